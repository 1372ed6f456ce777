// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/ziljnk/content-generation/internal/analyzer"
	"github.com/ziljnk/content-generation/internal/config"
	"github.com/ziljnk/content-generation/internal/controller"
	"github.com/ziljnk/content-generation/internal/db"
	"github.com/ziljnk/content-generation/internal/generation"
	"github.com/ziljnk/content-generation/internal/progress"
	"github.com/ziljnk/content-generation/internal/publisher"
	"github.com/ziljnk/content-generation/internal/queue"
	"github.com/ziljnk/content-generation/internal/repository"
	"github.com/ziljnk/content-generation/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Init DB
	db.Init()

	contentRepo := &repository.ContentRepository{DB: db.DB}
	profileRepo := &repository.BusinessProfileRepository{DB: db.DB}

	// One limiter shared by the text and image providers.
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.ModelRateLimit)), cfg.ModelRateLimit)

	textGen, err := generation.NewOpenAIText(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TextModel, limiter)
	if err != nil {
		log.Fatalf("failed to configure text generation: %v", err)
	}

	imageGen, err := generation.NewHeroImageGenerator(context.Background(), cfg.GoogleAPIKey, cfg.ImageModel, cfg.FallbackImageURL, limiter)
	if err != nil {
		log.Fatalf("failed to configure image generation: %v", err)
	}

	mediaStore := generation.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)

	generator := &generation.Generator{
		Text:  textGen,
		Image: imageGen,
		Media: mediaStore,
		Repo:  contentRepo,
	}

	// Progress fans out over the in-memory bus (for /events) and, when
	// configured, a RabbitMQ fanout exchange for external listeners.
	bus := queue.NewInMemoryQueue()
	broadcast := progress.NewBroadcaster(bus, cfg.AMQPURL)
	defer broadcast.Close()

	emailPub := publisher.NewEmailPublisher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	facebookPub := publisher.NewFacebookPublisher(cfg.FacebookPageID, cfg.FacebookAccessToken)

	publishService := &service.PublishService{
		Repo:     contentRepo,
		Email:    emailPub,
		Facebook: facebookPub,
	}

	// Publish jobs go to RabbitMQ when available, so the standalone worker
	// handles delivery. Without it the in-memory queue delivers in-process.
	var jobs queue.Queue = bus
	inProcess := true
	if cfg.AMQPURL != "" {
		if amqpQueue, err := queue.DialAMQP(cfg.AMQPURL); err != nil {
			log.Println("⚠️ Failed to connect to RabbitMQ, falling back to in-memory queue:", err)
		} else {
			jobs = amqpQueue
			inProcess = false
			defer amqpQueue.Close()
		}
	}
	if inProcess {
		queue.StartPublishSubscriber(bus, publishService.Deliver)
	}

	contentService := &service.ContentService{
		Repo:  contentRepo,
		Text:  textGen,
		Queue: jobs,
	}
	webhookService := &service.WebhookService{
		Repo:      contentRepo,
		Profiles:  profileRepo,
		Generator: generator,
		Facebook:  facebookPub,
		Broadcast: broadcast,
	}

	generateController := &controller.GenerateController{Generator: generator}
	contentController := &controller.ContentController{ContentService: contentService}
	webhookController := &controller.WebhookController{WebhookService: webhookService}
	businessController := &controller.BusinessController{
		Profiles: profileRepo,
		Analyzer: analyzer.NewBrandAnalyzer(),
	}
	publishController := &controller.PublishController{
		Email:    emailPub,
		Facebook: facebookPub,
	}
	eventsController := &controller.EventsController{Bus: bus}

	r := chi.NewRouter()

	// Generation routes
	r.Post("/generate", generateController.Generate)
	r.Post("/webhooks/generate", webhookController.Generate)
	r.Post("/regenerate", contentController.Regenerate)

	// Review routes
	r.Get("/content", contentController.List)
	r.Patch("/content", contentController.UpdateStatus)
	r.Post("/content/{id}/publish", contentController.Publish)
	r.Get("/media", contentController.Media)

	// Business profile routes
	r.Get("/business", businessController.Get)
	r.Post("/business", businessController.Save)
	r.Post("/business/analyze", businessController.Analyze)

	// Direct channel routes
	r.Post("/email/send", publishController.SendEmail)
	r.Post("/social/facebook", publishController.PostFacebook)

	// Progress stream
	r.Get("/events", eventsController.Stream)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

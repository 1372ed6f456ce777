// internal/service/webhook_service.go
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "sync"

    appErrors "github.com/ziljnk/content-generation/internal/errors"
    "github.com/ziljnk/content-generation/internal/generation"
    "github.com/ziljnk/content-generation/internal/model"
    "github.com/ziljnk/content-generation/internal/progress"
    "github.com/ziljnk/content-generation/internal/repository"
)

// contentGenerator runs one generation pipeline. Satisfied by
// *generation.Generator, replaced with a fake in tests.
type contentGenerator interface {
    Generate(ctx context.Context, opts generation.Options) (*model.Content, error)
}

// WebhookService turns an inbound product event into three concurrent
// generation runs (blog, email, social) against the configured brand profile.
// The HTTP caller gets placeholder ids immediately; the actual work happens on
// a detached goroutine whose only output path is the progress broadcast.
type WebhookService struct {
    Repo      repository.ContentRepositoryInterface
    Profiles  repository.BusinessProfileRepositoryInterface
    Generator contentGenerator
    Facebook  socialPublisher
    Broadcast progress.Sink
}

// WebhookResult carries the placeholder ids returned to the webhook caller.
type WebhookResult struct {
    BlogID   int `json:"blogId"`
    EmailID  int `json:"emailId"`
    SocialID int `json:"socialId"`
}

var webhookEmailConfig = model.EmailConfig{
    Tone:     "exciting",
    Purpose:  "product announcement",
    Audience: "customers",
}

// Trigger validates the event, creates the three "processing" placeholders and
// kicks off background generation. Returns as soon as the placeholders exist.
func (s *WebhookService) Trigger(ctx context.Context, payload map[string]any) (*WebhookResult, error) {
    profile, err := s.Profiles.Latest()
    if err != nil {
        return nil, err
    }
    if profile == nil {
        return nil, appErrors.NewProfileNotFound()
    }

    productName, prompt := marketingPrompt(payload)

    placeholders := make([]*model.Content, 0, 3)
    for _, t := range []string{model.TypeBlog, model.TypeEmail, model.TypeSocial} {
        rec := &model.Content{
            Type:    t,
            Prompt:  prompt,
            Content: "Generating content...",
            Status:  model.StatusProcessing,
        }
        if t == model.TypeEmail {
            cfg := webhookEmailConfig
            rec.Config = &cfg
        }
        if err := s.Repo.Create(rec); err != nil {
            return nil, err
        }
        placeholders = append(placeholders, rec)
    }

    result := &WebhookResult{
        BlogID:   placeholders[0].ID,
        EmailID:  placeholders[1].ID,
        SocialID: placeholders[2].ID,
    }

    // Sent before returning so listeners see activity right away.
    s.send("Webhook Received", fmt.Sprintf("Queued generation for %s...", productName), progress.StatusPending)

    // Detached: the request context dies as soon as the caller gets its
    // response, so the background runs get their own.
    go s.run(context.Background(), productName, prompt, profile, result)

    return result, nil
}

// run executes the three pipelines concurrently. The runs are independent:
// one failing neither cancels nor affects the others.
func (s *WebhookService) run(ctx context.Context, productName, prompt string, profile *model.BusinessProfile, ids *WebhookResult) {
    var wg sync.WaitGroup

    runOne := func(opts generation.Options, after func(*model.Content)) {
        defer wg.Done()
        rec, err := s.Generator.Generate(ctx, opts)
        if err != nil {
            // The orchestrator already broadcast the terminal error event.
            // Without this the placeholder would sit in "processing" forever.
            log.Println("⚠️ Background generation failed:", err)
            if uerr := s.Repo.UpdateStatus(opts.ExistingID, model.StatusArchived); uerr != nil {
                log.Println("⚠️ Failed to archive stuck placeholder", opts.ExistingID, ":", uerr)
            }
            return
        }
        if after != nil {
            after(rec)
        }
    }

    wg.Add(3)
    go runOne(generation.Options{
        Type:       model.TypeBlog,
        Topic:      prompt,
        Profile:    profile,
        ExistingID: ids.BlogID,
        Step:       "Blog Generation",
        Sink:       s.Broadcast,
    }, nil)

    cfg := webhookEmailConfig
    go runOne(generation.Options{
        Type:       model.TypeEmail,
        Topic:      prompt,
        Config:     &cfg,
        Profile:    profile,
        ExistingID: ids.EmailID,
        Step:       "Email Generation",
        Sink:       s.Broadcast,
    }, nil)

    go runOne(generation.Options{
        Type:       model.TypeSocial,
        Topic:      prompt,
        Profile:    profile,
        ExistingID: ids.SocialID,
        Step:       "Social Post Generation",
        Sink:       s.Broadcast,
    }, s.autoPublishSocial(ctx))

    wg.Wait()
    s.send("Complete", fmt.Sprintf("Successfully generated content for %s", productName), progress.StatusComplete)
}

// autoPublishSocial pushes a finished caption straight to the page feed.
// A publish failure only affects the social record; blog and email runs keep
// whatever status they earned.
func (s *WebhookService) autoPublishSocial(ctx context.Context) func(*model.Content) {
    return func(rec *model.Content) {
        if rec == nil || rec.Content == "" {
            return
        }

        s.send("Social Publishing", "Publishing to Facebook...", progress.StatusGenerating)
        if _, err := s.Facebook.Post(ctx, rec.Content, rec.ImageURL); err != nil {
            log.Println("⚠️ Auto-publish failed:", err)
            s.send("Social Publishing", "Failed to publish: "+err.Error(), progress.StatusError)
            return
        }

        if err := s.Repo.UpdateStatus(rec.ID, model.StatusPublished); err != nil {
            log.Println("⚠️ Failed to mark social content published:", err)
            return
        }
        s.send("Social Publishing", "Published to Facebook successfully!", progress.StatusComplete)
    }
}

func (s *WebhookService) send(step, message, status string) {
    if s.Broadcast != nil {
        s.Broadcast.Send(progress.NewEvent(step, message, status))
    }
}

// marketingPrompt derives a generation topic from a loosely shaped product
// event. Unknown extra fields end up in the description so nothing is lost.
func marketingPrompt(payload map[string]any) (productName, prompt string) {
    productName = firstString(payload, "productName", "product", "name", "title")
    if productName == "" {
        productName = "New Product"
    }

    description := firstString(payload, "description", "summary")
    if description == "" {
        rest := map[string]any{}
        for k, v := range payload {
            switch k {
            case "productName", "product", "name", "title", "description", "summary":
            default:
                rest[k] = v
            }
        }
        if b, err := json.Marshal(rest); err == nil {
            description = string(b)
        }
    }

    return productName, fmt.Sprintf("Product Launch: %s. Description: %s", productName, description)
}

func firstString(payload map[string]any, keys ...string) string {
    for _, key := range keys {
        if v, ok := payload[key].(string); ok && v != "" {
            return v
        }
    }
    return ""
}

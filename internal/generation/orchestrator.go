package generation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
	"github.com/ziljnk/content-generation/internal/model"
	"github.com/ziljnk/content-generation/internal/progress"
	"github.com/ziljnk/content-generation/internal/repository"
)

// Options describes one generation run.
type Options struct {
	Type    string
	Topic   string
	Config  *model.EmailConfig
	Profile *model.BusinessProfile

	// ExistingID, when set, completes a pre-created "processing" placeholder
	// in place instead of inserting a new record.
	ExistingID int

	// Step labels this run's progress events so consumers of a shared
	// broadcast channel can tell concurrent runs apart.
	Step string

	// Sink receives milestone events. Optional.
	Sink progress.Sink
}

// Generator is the pipeline core: it builds the prompts, runs the text branch
// and the image+upload branch concurrently, merges results through the
// injection step, and persists the outcome.
//
// Failure semantics: text generation and persistence failures are fatal and
// surface as a terminal error event. Everything on the image path degrades to
// "no image" and the run still succeeds.
type Generator struct {
	Text  TextGenerator
	Image ImageGenerator
	Media MediaStore
	Repo  repository.ContentRepositoryInterface
}

func (g *Generator) Generate(ctx context.Context, opts Options) (*model.Content, error) {
	if strings.TrimSpace(opts.Topic) == "" {
		return nil, appErrors.NewInvalidRequest("prompt is required")
	}
	if !model.ValidType(opts.Type) {
		return nil, appErrors.NewInvalidRequest("unknown content type: " + opts.Type)
	}

	step := opts.Step
	if step == "" {
		step = "Generation"
	}
	report := func(message, status string) {
		if opts.Sink != nil {
			opts.Sink.Send(progress.NewEvent(step, message, status))
		}
	}
	fail := func(err error) (*model.Content, error) {
		report(err.Error(), progress.StatusError)
		return nil, err
	}

	report("Starting generation process...", progress.StatusGenerating)

	prompts := BuildPrompts(opts.Type, opts.Topic, opts.Config, opts.Profile)

	var (
		rawText  string
		imageURL string
	)

	// Both branches are required inputs to injection, so this is a join, not
	// a race. The image branch never returns an error; only a text failure
	// cancels the group.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		report("Generating text content...", progress.StatusGenerating)
		text, err := g.Text.Generate(egCtx, prompts.Text)
		if err != nil {
			return fmt.Errorf("text generation failed: %w", err)
		}
		rawText = text
		report("Text generated successfully", progress.StatusGenerating)
		return nil
	})

	eg.Go(func() error {
		report("Generating AI image...", progress.StatusGenerating)
		res, err := g.Image.Generate(egCtx, prompts.Image, opts.Topic, func(message string) {
			report(message, progress.StatusGenerating)
		})
		if err != nil {
			log.Println("⚠️ Image generation failed, continuing without image:", err)
			return nil
		}
		if res.Empty() {
			return nil
		}

		report("Uploading image to cloud...", progress.StatusGenerating)
		url, err := g.Media.Upload(egCtx, res.Data, mediaFileName(res.MimeType), res.MimeType)
		if err != nil {
			log.Println("⚠️ Image upload failed, continuing without image:", err)
			return nil
		}
		imageURL = url
		report("Image upload complete", progress.StatusGenerating)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return fail(err)
	}

	report("Injecting media and finalizing...", progress.StatusGenerating)

	content := NormalizeDocument(rawText, opts.Type)
	content = InjectHeroImage(content, imageURL, opts.Type, opts.Topic)

	rec := &model.Content{
		Type:     opts.Type,
		Prompt:   opts.Topic,
		Config:   opts.Config,
		Content:  content,
		ImageURL: imageURL,
		Status:   model.StatusGenerated,
	}

	if opts.ExistingID != 0 {
		rec.ID = opts.ExistingID
		if err := g.Repo.UpdateGenerated(rec); err != nil {
			return fail(fmt.Errorf("failed to persist content: %w", err))
		}
	} else {
		if err := g.Repo.Create(rec); err != nil {
			return fail(fmt.Errorf("failed to persist content: %w", err))
		}
	}

	return rec, nil
}

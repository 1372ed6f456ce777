// internal/service/content_service.go
package service

import (
    "context"
    "log"
    "strings"

    appErrors "github.com/ziljnk/content-generation/internal/errors"
    "github.com/ziljnk/content-generation/internal/generation"
    "github.com/ziljnk/content-generation/internal/model"
    "github.com/ziljnk/content-generation/internal/queue"
    "github.com/ziljnk/content-generation/internal/repository"
)

// Publish channels.
const (
    ChannelEmail    = "email"
    ChannelFacebook = "facebook"
)

// allowedTransitions is the review lifecycle. Regeneration resets to
// "generated" through its own path; nothing ever leaves "published" or
// "archived" via a status PATCH.
var allowedTransitions = map[string][]string{
    model.StatusProcessing: {model.StatusGenerated, model.StatusArchived},
    model.StatusGenerated:  {model.StatusApproved, model.StatusArchived},
    model.StatusApproved:   {model.StatusPublished, model.StatusArchived},
}

// ContentService drives the review/publish workflow around finished records.
type ContentService struct {
    Repo  repository.ContentRepositoryInterface
    Text  generation.TextGenerator
    Queue queue.Queue
}

// List fetches records, optionally filtered by status and type.
func (s *ContentService) List(status, contentType string) ([]*model.Content, error) {
    if status != "" && !model.ValidStatus(status) {
        return nil, appErrors.NewInvalidRequest("unknown status: " + status)
    }
    if contentType != "" && !model.ValidType(contentType) {
        return nil, appErrors.NewInvalidRequest("unknown content type: " + contentType)
    }
    return s.Repo.List(status, contentType)
}

// ListMedia fetches every record carrying a generated image.
func (s *ContentService) ListMedia() ([]*model.Content, error) {
    return s.Repo.ListMedia()
}

// UpdateStatus moves a record through the review lifecycle. Records written
// before the status column existed count as "generated".
func (s *ContentService) UpdateStatus(id int, status string) (*model.Content, error) {
    if !model.ValidStatus(status) {
        return nil, appErrors.NewInvalidRequest("unknown status: " + status)
    }

    rec, err := s.Repo.GetByID(id)
    if err != nil {
        return nil, err
    }

    from := rec.Status
    if from == "" {
        from = model.StatusGenerated
    }
    if !transitionAllowed(from, status) {
        return nil, appErrors.NewInvalidTransition(from, status)
    }

    if err := s.Repo.UpdateStatus(id, status); err != nil {
        return nil, err
    }
    rec.Status = status
    return rec, nil
}

// Regenerate rewrites a record's content based on user feedback. An embedded
// <img> tag is preserved by instruction, and the status always resets to
// "generated" regardless of where the record was in the lifecycle.
func (s *ContentService) Regenerate(ctx context.Context, id int, feedback string) (*model.Content, error) {
    if strings.TrimSpace(feedback) == "" {
        return nil, appErrors.NewInvalidRequest("ID and feedback are required")
    }

    rec, err := s.Repo.GetByID(id)
    if err != nil {
        return nil, err
    }

    prompt := generation.BuildRegenerationPrompt(rec.Prompt, feedback, rec.Content)
    text, err := s.Text.Generate(ctx, prompt)
    if err != nil {
        return nil, err
    }

    rec.Content = generation.NormalizeDocument(text, rec.Type)
    rec.Status = model.StatusGenerated
    if err := s.Repo.UpdateGenerated(rec); err != nil {
        return nil, err
    }
    return rec, nil
}

// Publish queues channel deliveries for an approved record. The status flips
// to "published" only once a consumer actually delivers.
func (s *ContentService) Publish(id int, channels []string, recipients []string, subject string) error {
    if len(channels) == 0 {
        return appErrors.NewInvalidRequest("at least one channel is required")
    }

    rec, err := s.Repo.GetByID(id)
    if err != nil {
        return err
    }
    if rec.Status != model.StatusApproved {
        return appErrors.NewInvalidTransition(rec.Status, model.StatusPublished)
    }

    for _, channel := range channels {
        if channel != ChannelEmail && channel != ChannelFacebook {
            return appErrors.NewInvalidRequest("unknown publish channel: " + channel)
        }
        if channel == ChannelEmail && len(recipients) == 0 {
            return appErrors.NewInvalidRequest("recipients are required for the email channel")
        }
    }

    for _, channel := range channels {
        job := queue.PublishJob{
            ContentID:  rec.ID,
            Channel:    channel,
            Recipients: recipients,
            Subject:    subject,
        }
        if err := s.Queue.Publish(queue.PublishTopic, job); err != nil {
            log.Println("⚠️ failed to enqueue publish job for content", rec.ID, ":", err)
            return err
        }
    }
    return nil
}

func transitionAllowed(from, to string) bool {
    for _, allowed := range allowedTransitions[from] {
        if allowed == to {
            return true
        }
    }
    return false
}

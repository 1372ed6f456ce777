// internal/service/publish_service.go
package service

import (
    "context"
    "fmt"
    "log"

    "github.com/ziljnk/content-generation/internal/model"
    "github.com/ziljnk/content-generation/internal/queue"
    "github.com/ziljnk/content-generation/internal/repository"
)

// emailSender delivers rendered HTML to a recipient list.
type emailSender interface {
    Send(ctx context.Context, recipients []string, subject, htmlBody string) error
}

// socialPublisher posts a caption (optionally with an image) to a page feed.
type socialPublisher interface {
    Post(ctx context.Context, message, imageURL string) (string, error)
}

// PublishService executes queued publish jobs. Both the in-process subscriber
// and the standalone worker use it; a returned error triggers a queue retry.
type PublishService struct {
    Repo     repository.ContentRepositoryInterface
    Email    emailSender
    Facebook socialPublisher
}

// Deliver pushes one record out to its channel and marks it published.
// The status is left untouched when delivery fails.
func (s *PublishService) Deliver(job queue.PublishJob) error {
    ctx := context.Background()

    rec, err := s.Repo.GetByID(job.ContentID)
    if err != nil {
        return err
    }

    switch job.Channel {
    case ChannelEmail:
        err = s.Email.Send(ctx, job.Recipients, job.Subject, rec.Content)
    case ChannelFacebook:
        _, err = s.Facebook.Post(ctx, rec.Content, rec.ImageURL)
    default:
        log.Println("⚠️ Unknown publish channel:", job.Channel)
        return nil // no retry
    }
    if err != nil {
        return fmt.Errorf("failed to publish content %d to %s: %w", rec.ID, job.Channel, err)
    }

    if err := s.Repo.UpdateStatus(rec.ID, model.StatusPublished); err != nil {
        return err
    }

    log.Println("✅ Published content", rec.ID, "to", job.Channel)
    return nil
}

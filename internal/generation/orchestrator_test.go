package generation_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
	"github.com/ziljnk/content-generation/internal/generation"
	"github.com/ziljnk/content-generation/internal/model"
	"github.com/ziljnk/content-generation/internal/progress"
)

// --- Fakes ---

type fakeText struct {
	out string
	err error
}

func (f *fakeText) Generate(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

type fakeImage struct {
	res generation.ImageResult
	err error
}

func (f *fakeImage) Generate(ctx context.Context, imagePrompt, topic string, report func(message string)) (generation.ImageResult, error) {
	return f.res, f.err
}

type fakeMedia struct {
	url string
	err error
}

func (f *fakeMedia) Upload(ctx context.Context, data []byte, fileName, mimeType string) (string, error) {
	return f.url, f.err
}

type fakeContentRepo struct {
	created []*model.Content
	updated []*model.Content
}

func (f *fakeContentRepo) Create(c *model.Content) error {
	c.ID = len(f.created) + 1
	f.created = append(f.created, c)
	return nil
}
func (f *fakeContentRepo) GetByID(id int) (*model.Content, error)                 { return nil, nil }
func (f *fakeContentRepo) List(status, contentType string) ([]*model.Content, error) { return nil, nil }
func (f *fakeContentRepo) ListMedia() ([]*model.Content, error)                   { return nil, nil }
func (f *fakeContentRepo) UpdateStatus(id int, status string) error               { return nil }
func (f *fakeContentRepo) UpdateGenerated(c *model.Content) error {
	f.updated = append(f.updated, c)
	return nil
}

// eventRecorder collects events; the pipeline branches report concurrently.
type eventRecorder struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *eventRecorder) Send(e progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []progress.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]progress.Event(nil), r.events...)
}

const htmlDoc = "<!DOCTYPE html><html><body>" + generation.Placeholder + "<h1>Post</h1></body></html>"

// --- Tests ---

func TestGenerateHappyPath(t *testing.T) {
	repo := &fakeContentRepo{}
	rec := &eventRecorder{}
	g := &generation.Generator{
		Text:  &fakeText{out: htmlDoc},
		Image: &fakeImage{res: generation.ImageResult{Data: []byte{1, 2}, MimeType: "image/png"}},
		Media: &fakeMedia{url: "https://cdn.example.com/hero.png"},
		Repo:  repo,
	}

	out, err := g.Generate(context.Background(), generation.Options{
		Type:  model.TypeBlog,
		Topic: "Launch week",
		Sink:  rec,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Status != model.StatusGenerated {
		t.Errorf("status = %q, want %q", out.Status, model.StatusGenerated)
	}
	if out.ImageURL != "https://cdn.example.com/hero.png" {
		t.Errorf("image URL = %q", out.ImageURL)
	}
	if strings.Contains(out.Content, generation.Placeholder) {
		t.Error("placeholder survived the pipeline")
	}
	if !strings.Contains(out.Content, "https://cdn.example.com/hero.png") {
		t.Error("image not injected into content")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	if out.ID == 0 {
		t.Error("id not set from insert")
	}

	events := rec.all()
	if len(events) == 0 {
		t.Fatal("no progress events emitted")
	}
	for _, e := range events {
		if e.Status == progress.StatusError {
			t.Errorf("unexpected error event: %q", e.Message)
		}
	}
}

func TestGenerateSurvivesImageFailure(t *testing.T) {
	repo := &fakeContentRepo{}
	g := &generation.Generator{
		Text:  &fakeText{out: htmlDoc},
		Image: &fakeImage{err: errors.New("provider down")},
		Media: &fakeMedia{},
		Repo:  repo,
	}

	out, err := g.Generate(context.Background(), generation.Options{Type: model.TypeBlog, Topic: "topic"})
	if err != nil {
		t.Fatalf("image failure should not fail the run: %v", err)
	}
	if out.ImageURL != "" {
		t.Errorf("image URL should be empty, got %q", out.ImageURL)
	}
	if strings.Contains(out.Content, generation.Placeholder) {
		t.Error("placeholder not cleaned up on the no-image path")
	}
	if len(repo.created) != 1 {
		t.Error("record not persisted despite a successful text branch")
	}
}

func TestGenerateSurvivesUploadFailure(t *testing.T) {
	repo := &fakeContentRepo{}
	g := &generation.Generator{
		Text:  &fakeText{out: htmlDoc},
		Image: &fakeImage{res: generation.ImageResult{Data: []byte{1}, MimeType: "image/png"}},
		Media: &fakeMedia{err: errors.New("bucket unavailable")},
		Repo:  repo,
	}

	out, err := g.Generate(context.Background(), generation.Options{Type: model.TypeBlog, Topic: "topic"})
	if err != nil {
		t.Fatalf("upload failure should not fail the run: %v", err)
	}
	if out.ImageURL != "" {
		t.Errorf("image URL should be empty, got %q", out.ImageURL)
	}
}

func TestGenerateTextFailureIsFatal(t *testing.T) {
	repo := &fakeContentRepo{}
	rec := &eventRecorder{}
	g := &generation.Generator{
		Text:  &fakeText{err: errors.New("quota exceeded")},
		Image: &fakeImage{},
		Media: &fakeMedia{},
		Repo:  repo,
	}

	_, err := g.Generate(context.Background(), generation.Options{Type: model.TypeBlog, Topic: "topic", Sink: rec})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(repo.created) != 0 {
		t.Error("nothing should be persisted when text generation fails")
	}

	events := rec.all()
	if len(events) == 0 {
		t.Fatal("expected a terminal error event")
	}
	last := events[len(events)-1]
	if last.Status != progress.StatusError {
		t.Errorf("last event status = %q, want %q", last.Status, progress.StatusError)
	}
}

func TestGenerateCompletesPlaceholderInPlace(t *testing.T) {
	repo := &fakeContentRepo{}
	g := &generation.Generator{
		Text:  &fakeText{out: htmlDoc},
		Image: &fakeImage{},
		Media: &fakeMedia{},
		Repo:  repo,
	}

	out, err := g.Generate(context.Background(), generation.Options{
		Type:       model.TypeEmail,
		Topic:      "topic",
		ExistingID: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 42 {
		t.Errorf("id = %d, want 42", out.ID)
	}
	if len(repo.created) != 0 {
		t.Error("placeholder completion must not insert a new record")
	}
	if len(repo.updated) != 1 {
		t.Fatal("placeholder row not updated")
	}
	if repo.updated[0].Status != model.StatusGenerated {
		t.Errorf("status = %q, want %q", repo.updated[0].Status, model.StatusGenerated)
	}
}

func TestGenerateRejectsBadInputBeforeAnyEvent(t *testing.T) {
	rec := &eventRecorder{}
	g := &generation.Generator{
		Text:  &fakeText{out: htmlDoc},
		Image: &fakeImage{},
		Media: &fakeMedia{},
		Repo:  &fakeContentRepo{},
	}

	_, err := g.Generate(context.Background(), generation.Options{Type: model.TypeBlog, Topic: "   ", Sink: rec})
	if !appErrors.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Error("validation failures must not emit events")
	}

	_, err = g.Generate(context.Background(), generation.Options{Type: "podcast", Topic: "topic", Sink: rec})
	if !appErrors.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request for unknown type, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Error("validation failures must not emit events")
	}
}

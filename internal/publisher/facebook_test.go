package publisher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
)

func graphFixture(t *testing.T, response string, status int) (*FacebookPublisher, *[]*http.Request, *[]map[string]any) {
	t.Helper()
	var requests []*http.Request
	var bodies []map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		bodies = append(bodies, body)

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	p := NewFacebookPublisher("page123", "token456")
	p.BaseURL = srv.URL
	p.HTTPClient = srv.Client()
	return p, &requests, &bodies
}

func TestPostWithImageUsesPhotosEndpoint(t *testing.T) {
	p, requests, bodies := graphFixture(t, `{"post_id":"page123_987"}`, http.StatusOK)

	id, err := p.Post(context.Background(), "Big launch!", "https://cdn.example.com/hero.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "page123_987" {
		t.Errorf("post id = %q", id)
	}

	r := (*requests)[0]
	if !strings.HasSuffix(r.URL.Path, "/page123/photos") {
		t.Errorf("path = %q, want the photos endpoint", r.URL.Path)
	}
	body := (*bodies)[0]
	if body["url"] != "https://cdn.example.com/hero.png" || body["caption"] != "Big launch!" {
		t.Errorf("photo payload wrong: %v", body)
	}
	if body["access_token"] != "token456" {
		t.Error("access token missing from payload")
	}
}

func TestPostWithoutImageUsesFeedEndpoint(t *testing.T) {
	p, requests, bodies := graphFixture(t, `{"id":"page123_654"}`, http.StatusOK)

	id, err := p.Post(context.Background(), "Text only", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "page123_654" {
		t.Errorf("post id = %q", id)
	}

	r := (*requests)[0]
	if !strings.HasSuffix(r.URL.Path, "/page123/feed") {
		t.Errorf("path = %q, want the feed endpoint", r.URL.Path)
	}
	if (*bodies)[0]["message"] != "Text only" {
		t.Errorf("feed payload wrong: %v", (*bodies)[0])
	}
}

func TestPostSurfacesGraphErrors(t *testing.T) {
	p, _, _ := graphFixture(t, `{"error":{"message":"Invalid OAuth access token"}}`, http.StatusBadRequest)

	_, err := p.Post(context.Background(), "caption", "")
	if err == nil || !strings.Contains(err.Error(), "Invalid OAuth access token") {
		t.Errorf("expected the Graph error message, got %v", err)
	}
}

func TestPostRequiresConfiguration(t *testing.T) {
	p := NewFacebookPublisher("", "")

	if _, err := p.Post(context.Background(), "caption", ""); !appErrors.IsNotConfigured(err) {
		t.Errorf("expected not configured, got %v", err)
	}
}

func TestPostRequiresMessage(t *testing.T) {
	p := NewFacebookPublisher("page", "token")

	if _, err := p.Post(context.Background(), "", ""); !appErrors.IsInvalidRequest(err) {
		t.Errorf("expected invalid request, got %v", err)
	}
}

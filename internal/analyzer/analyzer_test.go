package analyzer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ziljnk/content-generation/internal/analyzer"
	appErrors "github.com/ziljnk/content-generation/internal/errors"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
	<title>Acme Outdoors</title>
	<meta name="description" content="Gear and apparel for weekend hikers.">
	<meta name="theme-color" content="#2f6f4f">
	<link rel="icon" href="/favicon.ico">
	<script type="application/ld+json">
	{"@type": "Organization", "logo": {"url": "/assets/logo.png"}}
	</script>
	<style>
		body { font-family: Inter, sans-serif; color: #111111; }
		.btn { background: #2f6f4f; border-radius: 12px; }
		.card { border-radius: 12px; }
	</style>
</head>
<body><h1>Welcome</h1></body>
</html>`

func TestAnalyzeExtractsBrandSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	a := analyzer.NewBrandAnalyzer()
	a.HTTPClient = srv.Client()

	profile, err := a.Analyze(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.Name != "Acme Outdoors" {
		t.Errorf("name = %q", profile.Name)
	}
	if profile.Description != "Gear and apparel for weekend hikers." {
		t.Errorf("description = %q", profile.Description)
	}
	if profile.LogoURL != srv.URL+"/assets/logo.png" {
		t.Errorf("logo = %q, want JSON-LD logo resolved against the page", profile.LogoURL)
	}
	if profile.Styles.PrimaryColor != "#2f6f4f" {
		t.Errorf("primary color = %q, want the theme-color meta value", profile.Styles.PrimaryColor)
	}
	if profile.Styles.Typography != "Inter, sans-serif" {
		t.Errorf("typography = %q", profile.Styles.Typography)
	}
	if profile.Styles.BorderRadius != "12px" {
		t.Errorf("border radius = %q", profile.Styles.BorderRadius)
	}
}

func TestAnalyzeFallsBackToFrequentColorAndFavicon(t *testing.T) {
	page := `<html><head>
		<title>Plain Shop</title>
		<link rel="icon" href="/favicon.ico">
		<style>a { color: #ff8800; } b { color: #ff8800; } c { color: #0000ff; }</style>
	</head><body></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	a := analyzer.NewBrandAnalyzer()
	a.HTTPClient = srv.Client()

	profile, err := a.Analyze(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Styles.PrimaryColor != "#ff8800" {
		t.Errorf("primary color = %q, want the most frequent hex", profile.Styles.PrimaryColor)
	}
	if profile.LogoURL != srv.URL+"/favicon.ico" {
		t.Errorf("logo = %q, want the favicon", profile.LogoURL)
	}
	if profile.Styles.BorderRadius != "0.5rem" {
		t.Errorf("border radius default not applied: %q", profile.Styles.BorderRadius)
	}
}

func TestAnalyzeCachesPerURL(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	a := analyzer.NewBrandAnalyzer()
	a.HTTPClient = srv.Client()

	for i := 0; i < 3; i++ {
		if _, err := a.Analyze(context.Background(), srv.URL); err != nil {
			t.Fatalf("analyze %d failed: %v", i, err)
		}
	}

	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("expected a single fetch, server saw %d", got)
	}
}

func TestAnalyzeRequiresURL(t *testing.T) {
	a := analyzer.NewBrandAnalyzer()

	if _, err := a.Analyze(context.Background(), "  "); !appErrors.IsInvalidRequest(err) {
		t.Errorf("expected invalid request, got %v", err)
	}
}

func TestAnalyzeSurfacesHTTPFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	a := analyzer.NewBrandAnalyzer()
	a.HTTPClient = srv.Client()

	if _, err := a.Analyze(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

// Package analyzer scrapes a website for brand identity hints: name,
// description, logo, primary color, typography. One-shot HTML parsing, not
// part of the generation pipeline.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
	"github.com/ziljnk/content-generation/internal/model"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	hexColorRe = regexp.MustCompile(`#[0-9a-fA-F]{6}`)
	fontRe     = regexp.MustCompile(`font-family:\s*([^;}]+)`)
	radiusRe   = regexp.MustCompile(`(?:--radius|border-radius):\s*([^;}]+)`)
)

// BrandAnalyzer fetches and parses a page, caching results per URL so repeated
// lookups from the settings screen stay cheap.
type BrandAnalyzer struct {
	HTTPClient *http.Client
	cache      *gocache.Cache
}

func NewBrandAnalyzer() *BrandAnalyzer {
	return &BrandAnalyzer{
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		cache:      gocache.New(15*time.Minute, 30*time.Minute),
	}
}

// Analyze extracts a draft BusinessProfile from the page at pageURL.
// Extraction is best effort: missing signals fall back to sane defaults.
func (a *BrandAnalyzer) Analyze(ctx context.Context, pageURL string) (*model.BusinessProfile, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, appErrors.NewInvalidRequest("URL is required")
	}

	if cached, ok := a.cache.Get(pageURL); ok {
		if profile, ok := cached.(*model.BusinessProfile); ok {
			return profile, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, appErrors.NewInvalidRequest("invalid URL: " + err.Error())
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch website: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	profile := a.extract(doc, pageURL)
	a.cache.Set(pageURL, profile, gocache.DefaultExpiration)
	return profile, nil
}

func (a *BrandAnalyzer) extract(doc *goquery.Document, pageURL string) *model.BusinessProfile {
	styleText := doc.Find("style").Text()

	profile := &model.BusinessProfile{
		URL:         pageURL,
		Name:        strings.TrimSpace(doc.Find("title").First().Text()),
		Description: doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		LogoURL:     extractLogo(doc, pageURL),
		Styles: model.BrandStyles{
			PrimaryColor: extractPrimaryColor(doc, styleText),
			Typography:   extractFont(styleText),
			BorderRadius: extractRadius(styleText),
			Padding:      "1rem", // no reliable signal in static markup
		},
	}
	return profile
}

// extractPrimaryColor prefers an explicit theme-color meta tag, else the most
// frequent hex color in the inline styles.
func extractPrimaryColor(doc *goquery.Document, styleText string) string {
	counts := map[string]int{}
	best := "#000000"
	bestCount := 0
	for _, c := range hexColorRe.FindAllString(styleText, -1) {
		counts[c]++
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}

	if theme := doc.Find(`meta[name="theme-color"]`).AttrOr("content", ""); strings.HasPrefix(theme, "#") {
		return theme
	}
	return best
}

func extractFont(styleText string) string {
	if m := fontRe.FindStringSubmatch(styleText); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return "Inter, sans-serif"
}

func extractRadius(styleText string) string {
	if m := radiusRe.FindStringSubmatch(styleText); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return "0.5rem"
}

// extractLogo walks the usual suspects in priority order: schema.org JSON-LD,
// Open Graph tags, then favicons. Relative URLs are resolved against the page.
func extractLogo(doc *goquery.Document, pageURL string) string {
	logo := ""

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data struct {
			Type string          `json:"@type"`
			Logo json.RawMessage `json:"logo"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		if data.Type != "Organization" && data.Type != "Brand" {
			return true
		}

		var asString string
		if err := json.Unmarshal(data.Logo, &asString); err == nil && asString != "" {
			logo = asString
			return false
		}
		var asObject struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(data.Logo, &asObject); err == nil && asObject.URL != "" {
			logo = asObject.URL
			return false
		}
		return true
	})

	if logo == "" {
		logo = doc.Find(`meta[property="og:logo"]`).AttrOr("content", "")
	}
	if logo == "" {
		logo = doc.Find(`meta[property="og:image"]`).AttrOr("content", "")
	}
	for _, rel := range []string{"icon", "shortcut icon", "apple-touch-icon"} {
		if logo != "" {
			break
		}
		logo = doc.Find(fmt.Sprintf(`link[rel=%q]`, rel)).AttrOr("href", "")
	}

	return resolveURL(pageURL, logo)
}

func resolveURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

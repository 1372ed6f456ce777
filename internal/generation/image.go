package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ImageResult is the raw image payload produced by generation.
type ImageResult struct {
	Data     []byte
	MimeType string
}

func (r ImageResult) Empty() bool { return len(r.Data) == 0 }

// ImageGenerator produces a hero image for a prompt. Implementations absorb
// provider failures: a total failure yields an empty result, not an error, so
// the pipeline can finish without an image. The report callback (may be nil)
// receives informational milestones such as switching to the fallback provider.
type ImageGenerator interface {
	Generate(ctx context.Context, imagePrompt, topic string, report func(message string)) (ImageResult, error)
}

// imageModel is the slice of a provider client the adapter needs.
type imageModel interface {
	Generate(ctx context.Context, prompt string) (ImageResult, error)
}

// HeroImageGenerator tries the primary model first and silently falls back to
// a public generative image endpoint keyed by the topic. The primary model is
// a preview capability; the fallback keeps the pipeline producing a usable
// artifact at the cost of brand fidelity.
type HeroImageGenerator struct {
	Primary     imageModel // nil means always use the fallback
	FallbackURL string
	HTTPClient  *http.Client
	Limiter     *rate.Limiter
}

const defaultFallbackImageURL = "https://image.pollinations.ai"

// NewHeroImageGenerator builds the production adapter. With an empty API key
// the primary model is skipped entirely and only the fallback is used.
func NewHeroImageGenerator(ctx context.Context, apiKey, model, fallbackURL string, limiter *rate.Limiter) (*HeroImageGenerator, error) {
	if fallbackURL == "" {
		fallbackURL = defaultFallbackImageURL
	}

	gen := &HeroImageGenerator{
		FallbackURL: fallbackURL,
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
		Limiter:     limiter,
	}

	if apiKey == "" {
		log.Println("⚠️ GOOGLE_API_KEY not set, hero images will come from the fallback provider only")
		return gen, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	gen.Primary = &geminiImageModel{client: client, model: model}
	return gen, nil
}

func (g *HeroImageGenerator) Generate(ctx context.Context, imagePrompt, topic string, report func(message string)) (ImageResult, error) {
	if g.Primary != nil {
		if g.Limiter != nil {
			if err := g.Limiter.Wait(ctx); err != nil {
				return ImageResult{}, nil
			}
		}
		res, err := g.Primary.Generate(ctx, imagePrompt)
		if err == nil && !res.Empty() {
			return res, nil
		}
		if err != nil {
			log.Println("⚠️ Primary image generation failed, falling back:", err)
		}
	}

	if report != nil {
		report("Using fallback image provider...")
	}

	data, err := g.fetchFallback(ctx, topic)
	if err != nil {
		log.Println("⚠️ Fallback image fetch failed, continuing without image:", err)
		return ImageResult{}, nil
	}
	return ImageResult{Data: data, MimeType: "image/jpeg"}, nil
}

func (g *HeroImageGenerator) fetchFallback(ctx context.Context, topic string) ([]byte, error) {
	endpoint := fmt.Sprintf(
		"%s/prompt/%s?width=1280&height=720&nologo=true",
		strings.TrimRight(g.FallbackURL, "/"),
		url.PathEscape(topic+" professional minimalist"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback provider returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (g *HeroImageGenerator) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return http.DefaultClient
}

// geminiImageModel calls the Gemini image preview model and digs the inline
// binary payload out of the candidate parts.
type geminiImageModel struct {
	client *genai.Client
	model  string
}

func (m *geminiImageModel) Generate(ctx context.Context, prompt string) (ImageResult, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "16:9",
		},
	})
	if err != nil {
		return ImageResult{}, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return ImageResult{Data: part.InlineData.Data, MimeType: mime}, nil
			}
		}
	}
	return ImageResult{}, errors.New("no inline image payload in model response")
}

var _ ImageGenerator = (*HeroImageGenerator)(nil)

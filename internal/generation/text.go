package generation

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

// TextGenerator produces the raw document for a prompt. A failure here is
// fatal to the whole run; there is no textual fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIText implements TextGenerator using the official openai-go SDK
// (chat completions).
type OpenAIText struct {
	Model   string
	Limiter *rate.Limiter
	opts    []option.RequestOption
}

func NewOpenAIText(apiKey, baseURL, model string, limiter *rate.Limiter) (*OpenAIText, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if model == "" {
		return nil, errors.New("text model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIText{Model: model, Limiter: limiter, opts: opts}, nil
}

func (o *OpenAIText) Generate(ctx context.Context, prompt string) (string, error) {
	if o.Limiter != nil {
		if err := o.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ TextGenerator = (*OpenAIText)(nil)

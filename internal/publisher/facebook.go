package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appErrors "github.com/ziljnk/content-generation/internal/errors"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v19.0"

// FacebookPublisher posts approved captions to a Facebook page via the Graph
// API: a photo post when an image URL is available, a plain feed post otherwise.
type FacebookPublisher struct {
	PageID      string
	AccessToken string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewFacebookPublisher(pageID, accessToken string) *FacebookPublisher {
	return &FacebookPublisher{
		PageID:      pageID,
		AccessToken: accessToken,
		BaseURL:     defaultGraphBaseURL,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *FacebookPublisher) Configured() bool {
	return p.PageID != "" && p.AccessToken != ""
}

// Post publishes the message and returns the created post id.
func (p *FacebookPublisher) Post(ctx context.Context, message, imageURL string) (string, error) {
	if !p.Configured() {
		return "", appErrors.NewNotConfigured("Facebook")
	}
	if message == "" {
		return "", appErrors.NewInvalidRequest("message is required")
	}

	var endpoint string
	var payload map[string]any

	if imageURL != "" {
		endpoint = fmt.Sprintf("%s/%s/photos", p.BaseURL, p.PageID)
		payload = map[string]any{
			"url":          imageURL,
			"caption":      message,
			"access_token": p.AccessToken,
			"published":    true,
		}
	} else {
		endpoint = fmt.Sprintf("%s/%s/feed", p.BaseURL, p.PageID)
		payload = map[string]any{
			"message":      message,
			"access_token": p.AccessToken,
			"published":    true,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode Facebook response: %w", err)
	}

	if resp.StatusCode >= 300 {
		if result.Error != nil && result.Error.Message != "" {
			return "", fmt.Errorf("facebook: %s", result.Error.Message)
		}
		return "", fmt.Errorf("facebook: request failed with %s", resp.Status)
	}

	if result.PostID != "" {
		return result.PostID, nil
	}
	return result.ID, nil
}

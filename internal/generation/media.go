package generation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// MediaStore accepts a raw image and returns a publicly resolvable URL.
// A failure here is absorbed by the orchestrator as "no image".
type MediaStore interface {
	Upload(ctx context.Context, data []byte, fileName, mimeType string) (string, error)
}

// SupabaseStore implements MediaStore against the Supabase Storage REST API.
// The bucket must exist and be public.
type SupabaseStore struct {
	BaseURL    string
	Key        string
	Bucket     string
	HTTPClient *http.Client
}

func NewSupabaseStore(baseURL, key, bucket string) *SupabaseStore {
	return &SupabaseStore{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Key:        key,
		Bucket:     bucket,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SupabaseStore) Upload(ctx context.Context, data []byte, fileName, mimeType string) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, s.Bucket, fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.Key)
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.BaseURL, s.Bucket, fileName), nil
}

// mediaFileName builds a collision-resistant object name like
// 1714690000000-x7kq2p9d4mn1f.png.
func mediaFileName(mimeType string) string {
	ext := "png"
	if i := strings.IndexByte(mimeType, '/'); i >= 0 && i < len(mimeType)-1 {
		ext = mimeType[i+1:]
	}
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), randomSuffix(13), ext)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

var _ MediaStore = (*SupabaseStore)(nil)

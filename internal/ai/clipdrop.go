package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/d60-Lab/quickai/config"
)

// ClipDropClient implements ImageGenerator against the ClipDrop
// text-to-image endpoint.
type ClipDropClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClipDropClient(cfg config.ClipDropConfig) *ClipDropClient {
	return &ClipDropClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ClipDropClient) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := c.baseURL + "/text-to-image/v1"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: clipdrop status=%d body=%s", ErrUpstream, resp.StatusCode, string(detail))
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read image: %v", ErrUpstream, err)
	}
	return img, nil
}

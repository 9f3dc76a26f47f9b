package ai

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/quickai/config"
)

// Cloudinary transform effects used by the image operations.
const (
	EffectBackgroundRemoval = "background_removal"
	EffectGenRemovePrefix   = "gen_remove:"
)

// CloudinaryClient implements ImageStore over Cloudinary's upload API and
// URL-based delivery transforms.
type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	uploadURL string
	client    *http.Client
	now       func() time.Time
}

func NewCloudinaryClient(cfg config.CloudinaryConfig) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		uploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudName),
		client:    &http.Client{Timeout: 60 * time.Second},
		now:       time.Now,
	}
}

func (c *CloudinaryClient) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (UploadResult, error) {
	publicID := opts.PublicID
	if publicID == "" {
		publicID = uuid.New().String()
	}

	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	if opts.Effect != "" {
		params["transformation"] = "e_" + opts.Effect
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}
	if err := w.WriteField("api_key", c.apiKey); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := w.WriteField("signature", signParams(params, c.apiSecret)); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	part, err := w.CreateFormFile("file", publicID)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return UploadResult{}, fmt.Errorf("%w: cloudinary status=%d body=%s", ErrUpstream, resp.StatusCode, string(detail))
	}

	var out struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return UploadResult{}, fmt.Errorf("%w: decode upload response: %v", ErrUpstream, err)
	}
	return UploadResult{PublicID: out.PublicID, SecureURL: out.SecureURL}, nil
}

// TransformURL builds a delivery URL applying the effect to a stored image,
// e.g. effect "gen_remove:watch" for generative object removal.
func (c *CloudinaryClient) TransformURL(publicID, effect string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/e_%s/%s", c.cloudName, effect, publicID)
}

// signParams produces Cloudinary's upload signature: SHA-1 over the sorted
// key=value pairs joined with '&', with the API secret appended.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return fmt.Sprintf("%x", sum)
}

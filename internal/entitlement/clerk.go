package entitlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/d60-Lab/quickai/config"
	"github.com/d60-Lab/quickai/internal/model"
)

// ClerkStore reads plan and usage from the Clerk backend API. The plan tag
// lives in public_metadata.plan, the counter in private_metadata.free_usage.
type ClerkStore struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewClerkStore(cfg config.ClerkConfig) *ClerkStore {
	return &ClerkStore{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type clerkUser struct {
	PublicMetadata struct {
		Plan string `json:"plan"`
	} `json:"public_metadata"`
	PrivateMetadata struct {
		FreeUsage *int `json:"free_usage"`
	} `json:"private_metadata"`
}

func (s *ClerkStore) Get(ctx context.Context, userID string) (model.Entitlement, error) {
	var ent model.Entitlement
	url := fmt.Sprintf("%s/users/%s", s.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ent, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return ent, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return ent, fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var u clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return ent, fmt.Errorf("%w: decode user: %v", ErrUnavailable, err)
	}

	ent.UserID = userID
	ent.Plan = model.PlanFree
	if u.PublicMetadata.Plan == model.PlanPremium {
		ent.Plan = model.PlanPremium
	}
	if u.PrivateMetadata.FreeUsage != nil {
		ent.FreeUsage = *u.PrivateMetadata.FreeUsage
		ent.UsageKnown = true
	}
	return ent, nil
}

func (s *ClerkStore) SetFreeUsage(ctx context.Context, userID string, usage int) error {
	url := fmt.Sprintf("%s/users/%s/metadata", s.baseURL, userID)
	payload := map[string]any{
		"private_metadata": map[string]any{"free_usage": usage},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, string(body))
	}
	return nil
}

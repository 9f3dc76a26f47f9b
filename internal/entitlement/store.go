// Package entitlement talks to the external identity store that holds each
// user's plan tag and free-usage counter. The core never caches entitlement
// data across requests.
package entitlement

import (
	"context"
	"errors"

	"github.com/d60-Lab/quickai/internal/model"
)

// ErrUnavailable wraps any transport or store failure. The usage gate fails
// closed on it.
var ErrUnavailable = errors.New("entitlement store unavailable")

type Store interface {
	// Get returns the user's plan and usage counter. UsageKnown is false
	// when the store has never recorded a counter for the user.
	Get(ctx context.Context, userID string) (model.Entitlement, error)
	// SetFreeUsage writes the counter back to the store.
	SetFreeUsage(ctx context.Context, userID string, usage int) error
}

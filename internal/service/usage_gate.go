package service

import (
	"context"

	"github.com/d60-Lab/quickai/internal/entitlement"
)

// Kind classifies an operation for the usage gate.
type Kind int

const (
	KindArticle Kind = iota
	KindBlogTitle
	KindImageGeneration
	KindBackgroundRemoval
	KindObjectRemoval
	KindResumeReview
)

// counted reports whether the kind draws from the free-tier quota. All
// other kinds require the premium plan outright, with no free allowance.
func (k Kind) counted() bool { return k == KindArticle || k == KindBlogTitle }

// DefaultFreeLimit is the counted-generation allowance for free users.
const DefaultFreeLimit = 10

// Decision is the gate's allow verdict. Counted marks decisions that must
// be committed (counter incremented) after the generation succeeds.
type Decision struct {
	UserID    string
	Plan      string
	FreeUsage int
	Counted   bool
}

// UsageGate decides per request whether a user may generate, reading the
// entitlement store fresh every time (no cross-request caching). Any store
// failure denies the request: the gate fails closed.
type UsageGate struct {
	store     entitlement.Store
	freeLimit int
}

func NewUsageGate(store entitlement.Store, freeLimit int) *UsageGate {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeLimit
	}
	return &UsageGate{store: store, freeLimit: freeLimit}
}

// Check evaluates plan and quota for one operation. A user with no recorded
// usage counter is treated as 0 and the store is initialized to 0 as a side
// effect (idempotent).
func (g *UsageGate) Check(ctx context.Context, userID string, kind Kind) (Decision, error) {
	ent, err := g.store.Get(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	if !ent.UsageKnown {
		if err := g.store.SetFreeUsage(ctx, userID, 0); err != nil {
			return Decision{}, err
		}
		ent.FreeUsage = 0
	}

	d := Decision{UserID: userID, Plan: ent.Plan, FreeUsage: ent.FreeUsage}

	if !kind.counted() {
		if !ent.Premium() {
			return Decision{}, ErrPremiumRequired
		}
		return d, nil
	}

	if ent.Premium() {
		return d, nil
	}
	if ent.FreeUsage >= g.freeLimit {
		return Decision{}, ErrQuotaExceeded
	}
	d.Counted = true
	return d, nil
}

// Commit charges one counted generation. Callers invoke it only after the
// generation succeeded and the ledger row is written; uncounted decisions
// are a no-op.
func (g *UsageGate) Commit(ctx context.Context, d Decision) error {
	if !d.Counted {
		return nil
	}
	return g.store.SetFreeUsage(ctx, d.UserID, d.FreeUsage+1)
}

package model

// Plan tags held by the external identity store.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Entitlement is the per-user snapshot read from the identity store at
// request time. FreeUsage is meaningful only for the free plan.
type Entitlement struct {
	UserID    string `json:"user_id"`
	Plan      string `json:"plan"`
	FreeUsage int    `json:"free_usage"`
	// UsageKnown is false when the store has no usage value yet; the gate
	// zero-initializes it on first observation.
	UsageKnown bool `json:"-"`
}

func (e Entitlement) Premium() bool { return e.Plan == PlanPremium }

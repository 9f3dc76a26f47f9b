package service

import "errors"

var (
	// ErrQuotaExceeded: a free-plan user hit the counted-generation limit.
	ErrQuotaExceeded = errors.New("free usage limit reached")
	// ErrPremiumRequired: a premium-only operation was hit by a free user.
	ErrPremiumRequired = errors.New("premium plan required")
	// ErrPersistence wraps ledger write/read failures.
	ErrPersistence = errors.New("persistence error")
)

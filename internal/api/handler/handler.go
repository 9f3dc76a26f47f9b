package handler

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/quickai/internal/ai"
	"github.com/d60-Lab/quickai/internal/entitlement"
	"github.com/d60-Lab/quickai/internal/repository"
	"github.com/d60-Lab/quickai/internal/service"
	"github.com/d60-Lab/quickai/pkg/logger"
	"github.com/d60-Lab/quickai/pkg/response"
)

type Handler struct {
	gen       service.GenerationService
	creations service.CreationService
}

func New(gen service.GenerationService, creations service.CreationService) *Handler {
	return &Handler{gen: gen, creations: creations}
}

// failFromError maps service errors onto the client envelope. Policy
// denials get their exact user-facing messages; infrastructure failures are
// logged and captured, then surfaced under the endpoint's fallback message
// (clients see one generic failure shape either way).
func failFromError(c *gin.Context, fallback string, err error) {
	switch {
	case errors.Is(err, service.ErrQuotaExceeded):
		response.Fail(c, "Free usage limit reached. Please upgrade to premium plan.")
	case errors.Is(err, service.ErrPremiumRequired):
		response.Fail(c, "Feature available only for premium users")
	case errors.Is(err, repository.ErrCreationNotFound):
		response.Fail(c, "Creation not found")
	case errors.Is(err, entitlement.ErrUnavailable),
		errors.Is(err, service.ErrPersistence),
		errors.Is(err, ai.ErrUpstream),
		errors.Is(err, ai.ErrExtraction):
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		sentry.CaptureException(err)
		response.FailErr(c, fallback, err)
	default:
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.FailErr(c, fallback, err)
	}
}

// Package ai wraps the external generation providers: an OpenAI-compatible
// completion API, the ClipDrop text-to-image API, Cloudinary image storage
// and transforms, and PDF text extraction. Callers treat every provider as
// an opaque collaborator; failures wrap ErrUpstream (or ErrExtraction for
// the PDF path) and are never retried here.
package ai

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrUpstream marks a generation/image provider failure.
	ErrUpstream = errors.New("upstream provider error")
	// ErrExtraction marks a resume text-extraction failure.
	ErrExtraction = errors.New("text extraction error")
)

// TextCompleter produces a completion for a prompt. maxTokens <= 0 leaves
// the provider default in place.
type TextCompleter interface {
	CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ImageGenerator renders a prompt into raw image bytes.
type ImageGenerator interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// UploadOptions control a storage upload. Effect is applied at upload time
// (eager transformation), e.g. background removal.
type UploadOptions struct {
	PublicID string
	Effect   string
}

// UploadResult is the stored image's identity and delivery URL.
type UploadResult struct {
	PublicID  string
	SecureURL string
}

// ImageStore persists images and builds transformed delivery URLs.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (UploadResult, error)
	TransformURL(publicID, effect string) string
}

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

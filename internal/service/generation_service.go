package service

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/d60-Lab/quickai/internal/ai"
	"github.com/d60-Lab/quickai/internal/model"
)

const resumeReviewMaxTokens = 1000

// GenerationService runs one generation end to end. Every operation follows
// the same order: gate check, provider call(s), ledger append, quota commit
// (free counted generations only). A provider failure therefore never
// charges the user, and the append/commit pair is deliberately not a
// transaction: a crash between the two under-charges one generation.
type GenerationService interface {
	GenerateArticle(ctx context.Context, userID, prompt string, length int) (string, error)
	GenerateBlogTitle(ctx context.Context, userID, prompt string) (string, error)
	GenerateImage(ctx context.Context, userID, prompt string, publish bool) (string, error)
	RemoveBackground(ctx context.Context, userID, imagePath string) (string, error)
	RemoveObject(ctx context.Context, userID, imagePath, object string) (string, error)
	ReviewResume(ctx context.Context, userID, resumePath string) (string, error)
}

type generationService struct {
	gate      *UsageGate
	completer ai.TextCompleter
	images    ai.ImageGenerator
	store     ai.ImageStore
	extractor ai.TextExtractor
	creations CreationService
}

func NewGenerationService(
	gate *UsageGate,
	completer ai.TextCompleter,
	images ai.ImageGenerator,
	store ai.ImageStore,
	extractor ai.TextExtractor,
	creations CreationService,
) GenerationService {
	return &generationService{
		gate:      gate,
		completer: completer,
		images:    images,
		store:     store,
		extractor: extractor,
		creations: creations,
	}
}

func (s *generationService) GenerateArticle(ctx context.Context, userID, prompt string, length int) (string, error) {
	return s.completeAndRecord(ctx, userID, KindArticle, prompt, prompt, length, model.TypeArticle)
}

func (s *generationService) GenerateBlogTitle(ctx context.Context, userID, prompt string) (string, error) {
	return s.completeAndRecord(ctx, userID, KindBlogTitle, prompt, prompt, 0, model.TypeBlogTitle)
}

// completeAndRecord is the shared text-completion path. storedPrompt is what
// lands in the ledger; it can differ from the prompt sent upstream.
func (s *generationService) completeAndRecord(ctx context.Context, userID string, kind Kind, prompt, storedPrompt string, maxTokens int, creationType string) (string, error) {
	decision, err := s.gate.Check(ctx, userID, kind)
	if err != nil {
		return "", err
	}

	content, err := s.completer.CompleteText(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}

	if err := s.creations.Append(ctx, &model.Creation{
		UserID:  userID,
		Prompt:  storedPrompt,
		Content: content,
		Type:    creationType,
	}); err != nil {
		return "", err
	}

	if err := s.gate.Commit(ctx, decision); err != nil {
		return "", err
	}
	return content, nil
}

func (s *generationService) GenerateImage(ctx context.Context, userID, prompt string, publish bool) (string, error) {
	if _, err := s.gate.Check(ctx, userID, KindImageGeneration); err != nil {
		return "", err
	}

	img, err := s.images.TextToImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	uploaded, err := s.store.Upload(ctx, bytes.NewReader(img), ai.UploadOptions{})
	if err != nil {
		return "", err
	}

	if err := s.creations.Append(ctx, &model.Creation{
		UserID:  userID,
		Prompt:  prompt,
		Content: uploaded.SecureURL,
		Type:    model.TypeImage,
		Publish: publish,
	}); err != nil {
		return "", err
	}
	return uploaded.SecureURL, nil
}

func (s *generationService) RemoveBackground(ctx context.Context, userID, imagePath string) (string, error) {
	if _, err := s.gate.Check(ctx, userID, KindBackgroundRemoval); err != nil {
		return "", err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: open image: %v", ai.ErrUpstream, err)
	}
	defer f.Close()

	uploaded, err := s.store.Upload(ctx, f, ai.UploadOptions{Effect: ai.EffectBackgroundRemoval})
	if err != nil {
		return "", err
	}

	if err := s.creations.Append(ctx, &model.Creation{
		UserID:  userID,
		Prompt:  "Remove background from image",
		Content: uploaded.SecureURL,
		Type:    model.TypeImage,
	}); err != nil {
		return "", err
	}
	return uploaded.SecureURL, nil
}

func (s *generationService) RemoveObject(ctx context.Context, userID, imagePath, object string) (string, error) {
	if _, err := s.gate.Check(ctx, userID, KindObjectRemoval); err != nil {
		return "", err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: open image: %v", ai.ErrUpstream, err)
	}
	defer f.Close()

	uploaded, err := s.store.Upload(ctx, f, ai.UploadOptions{})
	if err != nil {
		return "", err
	}
	imageURL := s.store.TransformURL(uploaded.PublicID, ai.EffectGenRemovePrefix+object)

	if err := s.creations.Append(ctx, &model.Creation{
		UserID:  userID,
		Prompt:  fmt.Sprintf("Remove %s from image", object),
		Content: imageURL,
		Type:    model.TypeImage,
	}); err != nil {
		return "", err
	}
	return imageURL, nil
}

func (s *generationService) ReviewResume(ctx context.Context, userID, resumePath string) (string, error) {
	if _, err := s.gate.Check(ctx, userID, KindResumeReview); err != nil {
		return "", err
	}

	text, err := s.extractor.ExtractText(resumePath)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Review the following resume and provide constructive feedback on its strengths, weaknesses, and areas for improvement:\n\n%s", text)
	content, err := s.completer.CompleteText(ctx, prompt, resumeReviewMaxTokens)
	if err != nil {
		return "", err
	}

	if err := s.creations.Append(ctx, &model.Creation{
		UserID:  userID,
		Prompt:  "Review the uploaded resume",
		Content: content,
		Type:    model.TypeReviewResume,
	}); err != nil {
		return "", err
	}
	return content, nil
}

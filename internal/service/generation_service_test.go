package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/quickai/internal/ai"
	"github.com/d60-Lab/quickai/internal/entitlement"
	"github.com/d60-Lab/quickai/internal/model"
	"github.com/d60-Lab/quickai/internal/repository"
)

type fakeCompleter struct {
	calls int
	fail  bool
}

func (f *fakeCompleter) CompleteText(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("%w: synthetic failure", ai.ErrUpstream)
	}
	return "completion for: " + prompt, nil
}

type fakeImageGen struct{ calls int }

func (f *fakeImageGen) TextToImage(context.Context, string) ([]byte, error) {
	f.calls++
	return []byte("png-bytes"), nil
}

type fakeImageStore struct{ uploads int }

func (f *fakeImageStore) Upload(_ context.Context, r io.Reader, _ ai.UploadOptions) (ai.UploadResult, error) {
	f.uploads++
	_, _ = io.ReadAll(r)
	return ai.UploadResult{PublicID: "pid", SecureURL: "https://cdn.example/pid.png"}, nil
}

func (f *fakeImageStore) TransformURL(publicID, effect string) string {
	return "https://cdn.example/e_" + effect + "/" + publicID
}

type fakeExtractor struct{ text string }

func (f *fakeExtractor) ExtractText(string) (string, error) {
	if f.text == "" {
		return "", fmt.Errorf("%w: empty", ai.ErrExtraction)
	}
	return f.text, nil
}

type genFixture struct {
	svc       GenerationService
	store     *entitlement.MemoryStore
	completer *fakeCompleter
	images    *fakeImageGen
	uploads   *fakeImageStore
	repo      repository.CreationRepository
}

func newGenFixture(t *testing.T) *genFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Creation{}))

	f := &genFixture{
		store:     entitlement.NewMemoryStore(),
		completer: &fakeCompleter{},
		images:    &fakeImageGen{},
		uploads:   &fakeImageStore{},
		repo:      repository.NewCreationRepository(db),
	}
	creations := NewCreationService(f.repo, nil, 0)
	gate := NewUsageGate(f.store, 10)
	f.svc = NewGenerationService(gate, f.completer, f.images, f.uploads, &fakeExtractor{text: "resume text"}, creations)
	return f
}

func tempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	return path
}

func TestGenerateArticleAppendsAndCharges(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	require.NoError(t, f.store.SetFreeUsage(ctx, "u1", 9))

	content, err := f.svc.GenerateArticle(ctx, "u1", "write about go", 800)
	require.NoError(t, err)
	require.Contains(t, content, "write about go")

	usage, _ := f.store.Usage("u1")
	require.Equal(t, 10, usage)

	list, err := f.repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, model.TypeArticle, list[0].Type)
	require.Equal(t, "write about go", list[0].Prompt)

	// The 11th counted attempt is rejected before any provider call.
	_, err = f.svc.GenerateArticle(ctx, "u1", "another", 800)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.Equal(t, 1, f.completer.calls)
}

func TestFailedGenerationNeverCharges(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	require.NoError(t, f.store.SetFreeUsage(ctx, "u1", 3))
	f.completer.fail = true

	_, err := f.svc.GenerateBlogTitle(ctx, "u1", "titles please")
	require.ErrorIs(t, err, ai.ErrUpstream)

	usage, _ := f.store.Usage("u1")
	require.Equal(t, 3, usage)

	list, err := f.repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPremiumGenerationIsUncounted(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	f.store.SetPlan("u1", model.PlanPremium)

	for i := 0; i < 12; i++ {
		_, err := f.svc.GenerateArticle(ctx, "u1", "prompt", 0)
		require.NoError(t, err)
	}
	usage, known := f.store.Usage("u1")
	require.True(t, known) // lazily zero-initialized, never incremented
	require.Equal(t, 0, usage)
}

func TestGenerateImageRequiresPremium(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)

	_, err := f.svc.GenerateImage(ctx, "free-user", "a fox", true)
	require.ErrorIs(t, err, ErrPremiumRequired)
	require.Zero(t, f.images.calls)

	f.store.SetPlan("pro", model.PlanPremium)
	url, err := f.svc.GenerateImage(ctx, "pro", "a fox", true)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/pid.png", url)

	list, err := f.repo.ListByUser(ctx, "pro")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Publish)
	require.Equal(t, model.TypeImage, list[0].Type)
}

func TestRemoveBackgroundSynthesizesPrompt(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	f.store.SetPlan("pro", model.PlanPremium)

	url, err := f.svc.RemoveBackground(ctx, "pro", tempFile(t, "in.png"))
	require.NoError(t, err)
	require.NotEmpty(t, url)

	list, err := f.repo.ListByUser(ctx, "pro")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Remove background from image", list[0].Prompt)
	require.False(t, list[0].Publish)
}

func TestRemoveObjectBuildsTransformURL(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	f.store.SetPlan("pro", model.PlanPremium)

	url, err := f.svc.RemoveObject(ctx, "pro", tempFile(t, "in.png"), "watch")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/e_gen_remove:watch/pid", url)

	list, err := f.repo.ListByUser(ctx, "pro")
	require.NoError(t, err)
	require.Equal(t, "Remove watch from image", list[0].Prompt)
}

func TestReviewResumeStoresSynthesizedPrompt(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)
	f.store.SetPlan("pro", model.PlanPremium)

	content, err := f.svc.ReviewResume(ctx, "pro", tempFile(t, "resume.pdf"))
	require.NoError(t, err)
	require.Contains(t, content, "resume text")

	list, err := f.repo.ListByUser(ctx, "pro")
	require.NoError(t, err)
	require.Equal(t, "Review the uploaded resume", list[0].Prompt)
	require.Equal(t, model.TypeReviewResume, list[0].Type)
}

func TestPersistenceFailureSurfacesAndSkipsCommit(t *testing.T) {
	ctx := context.Background()
	f := newGenFixture(t)

	failing := &failingCreations{}
	gate := NewUsageGate(f.store, 10)
	svc := NewGenerationService(gate, f.completer, f.images, f.uploads, &fakeExtractor{text: "x"}, failing)

	_, err := svc.GenerateArticle(ctx, "u1", "p", 0)
	require.ErrorIs(t, err, ErrPersistence)

	usage, _ := f.store.Usage("u1")
	require.Equal(t, 0, usage)
}

type failingCreations struct{}

func (failingCreations) Append(context.Context, *model.Creation) error {
	return fmt.Errorf("%w: db down", ErrPersistence)
}
func (failingCreations) ListByUser(context.Context, string) ([]*model.Creation, error) {
	return nil, errors.New("unused")
}
func (failingCreations) ListPublished(context.Context) ([]*model.Creation, error) {
	return nil, errors.New("unused")
}
func (failingCreations) ToggleLike(context.Context, int64, string) (bool, error) {
	return false, errors.New("unused")
}

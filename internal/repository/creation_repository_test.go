package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/quickai/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Creation{}))
	return db
}

func TestCreateAndListByUserOrdering(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := &model.Creation{UserID: "u1", Prompt: "p1", Content: "c1", Type: model.TypeArticle, CreatedAt: base}
	newer := &model.Creation{UserID: "u1", Prompt: "p2", Content: "c2", Type: model.TypeBlogTitle, CreatedAt: base.Add(time.Minute)}
	other := &model.Creation{UserID: "u2", Prompt: "p3", Content: "c3", Type: model.TypeArticle, CreatedAt: base}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID)
	require.Equal(t, older.ID, list[1].ID)
}

func TestListOrderingBreaksTiesByID(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	ctx := context.Background()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := &model.Creation{UserID: "u1", Type: model.TypeArticle, CreatedAt: at}
	second := &model.Creation{UserID: "u1", Type: model.TypeArticle, CreatedAt: at}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Equal timestamps: later insert (higher id) comes first.
	require.Equal(t, second.ID, list[0].ID)
}

func TestListPublished(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	ctx := context.Background()

	pub := &model.Creation{UserID: "u1", Type: model.TypeImage, Publish: true}
	priv := &model.Creation{UserID: "u2", Type: model.TypeImage}
	require.NoError(t, repo.Create(ctx, pub))
	require.NoError(t, repo.Create(ctx, priv))

	list, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, pub.ID, list[0].ID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	_, err := repo.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, ErrCreationNotFound)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	ctx := context.Background()

	c := &model.Creation{UserID: "owner", Type: model.TypeImage, Publish: true}
	require.NoError(t, repo.Create(ctx, c))

	liked, err := repo.ToggleLike(ctx, c.ID, "u1")
	require.NoError(t, err)
	require.True(t, liked)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, model.StringSet{"u1"}, got.Likes)

	liked, err = repo.ToggleLike(ctx, c.ID, "u1")
	require.NoError(t, err)
	require.False(t, liked)

	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, got.Likes)
}

func TestToggleLikeNeverDuplicates(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	ctx := context.Background()

	c := &model.Creation{UserID: "owner", Type: model.TypeArticle}
	require.NoError(t, repo.Create(ctx, c))

	// Alternating toggles by two users; the set must stay duplicate-free.
	for i := 0; i < 5; i++ {
		_, err := repo.ToggleLike(ctx, c.ID, "u1")
		require.NoError(t, err)
		_, err = repo.ToggleLike(ctx, c.ID, "u2")
		require.NoError(t, err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	seen := map[string]int{}
	for _, id := range got.Likes {
		seen[id]++
		require.Equal(t, 1, seen[id])
	}
}

func TestToggleLikeMissingCreation(t *testing.T) {
	repo := NewCreationRepository(setupTestDB(t))
	_, err := repo.ToggleLike(context.Background(), 999, "u1")
	require.ErrorIs(t, err, ErrCreationNotFound)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/quickai/internal/model"
	"github.com/d60-Lab/quickai/internal/repository"
	"github.com/d60-Lab/quickai/pkg/logger"
)

const publishedFeedKey = "creations:published"

// CreationService exposes the creation ledger: append, per-user and
// published listings, and the like toggle.
type CreationService interface {
	Append(ctx context.Context, c *model.Creation) error
	ListByUser(ctx context.Context, userID string) ([]*model.Creation, error)
	ListPublished(ctx context.Context) ([]*model.Creation, error)
	// ToggleLike flips userID's like on a creation and reports whether it
	// is now liked. Two concurrent toggles by different users can still
	// lose one like (read-then-write); accepted, see DESIGN.md.
	ToggleLike(ctx context.Context, id int64, userID string) (bool, error)
}

type creationService struct {
	repo    repository.CreationRepository
	cache   *redis.Client // nil disables feed caching
	feedTTL time.Duration
}

// NewCreationService builds the ledger service. cache may be nil.
func NewCreationService(repo repository.CreationRepository, cache *redis.Client, feedTTL time.Duration) CreationService {
	if feedTTL <= 0 {
		feedTTL = 30 * time.Second
	}
	return &creationService{repo: repo, cache: cache, feedTTL: feedTTL}
}

func (s *creationService) Append(ctx context.Context, c *model.Creation) error {
	if err := s.repo.Create(ctx, c); err != nil {
		return fmt.Errorf("%w: append creation: %v", ErrPersistence, err)
	}
	if c.Publish {
		s.invalidateFeed(ctx)
	}
	return nil
}

func (s *creationService) ListByUser(ctx context.Context, userID string) ([]*model.Creation, error) {
	res, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list user creations: %v", ErrPersistence, err)
	}
	return res, nil
}

// ListPublished serves the public feed from a short-lived redis snapshot
// when available; cache errors fall through to the database.
func (s *creationService) ListPublished(ctx context.Context) ([]*model.Creation, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, publishedFeedKey).Bytes(); err == nil {
			var out []*model.Creation
			if uErr := json.Unmarshal(data, &out); uErr == nil {
				return out, nil
			}
		}
	}

	res, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list published creations: %v", ErrPersistence, err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(res); err == nil {
			if err := s.cache.Set(ctx, publishedFeedKey, payload, s.feedTTL).Err(); err != nil {
				logger.Warn("published feed cache set failed", zap.Error(err))
			}
		}
	}
	return res, nil
}

func (s *creationService) ToggleLike(ctx context.Context, id int64, userID string) (bool, error) {
	liked, err := s.repo.ToggleLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCreationNotFound) {
			return false, err
		}
		return false, fmt.Errorf("%w: toggle like: %v", ErrPersistence, err)
	}
	// Likes are rendered in the public feed; drop the snapshot.
	s.invalidateFeed(ctx)
	return liked, nil
}

func (s *creationService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, publishedFeedKey).Err(); err != nil {
		logger.Warn("published feed cache invalidation failed", zap.Error(err))
	}
}

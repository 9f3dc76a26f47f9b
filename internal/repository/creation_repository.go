package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/quickai/internal/model"
)

// ErrCreationNotFound is returned when a creation id does not exist.
var ErrCreationNotFound = errors.New("creation not found")

type CreationRepository interface {
	Create(ctx context.Context, c *model.Creation) error
	GetByID(ctx context.Context, id int64) (*model.Creation, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Creation, error)
	ListPublished(ctx context.Context) ([]*model.Creation, error)
	// ToggleLike flips userID's membership in the like set of creation id
	// and reports whether the creation is now liked by that user. The
	// read-then-write runs in one transaction; see CreationService for the
	// accepted cross-request race.
	ToggleLike(ctx context.Context, id int64, userID string) (bool, error)
}

type creationRepository struct {
	db *gorm.DB
}

func NewCreationRepository(db *gorm.DB) CreationRepository { return &creationRepository{db: db} }

func (r *creationRepository) Create(ctx context.Context, c *model.Creation) error {
	if c.Likes == nil {
		c.Likes = model.StringSet{}
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *creationRepository) GetByID(ctx context.Context, id int64) (*model.Creation, error) {
	var c model.Creation
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Newest first; id breaks created_at ties so insertion order is stable.
const feedOrder = "created_at DESC, id DESC"

func (r *creationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Creation, error) {
	var res []*model.Creation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(feedOrder).
		Find(&res).Error
	return res, err
}

func (r *creationRepository) ListPublished(ctx context.Context) ([]*model.Creation, error) {
	var res []*model.Creation
	err := r.db.WithContext(ctx).
		Where("publish = ?", true).
		Order(feedOrder).
		Find(&res).Error
	return res, err
}

func (r *creationRepository) ToggleLike(ctx context.Context, id int64, userID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Creation
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreationNotFound
			}
			return err
		}
		if c.Likes.Contains(userID) {
			c.Likes = c.Likes.Remove(userID)
			liked = false
		} else {
			c.Likes = c.Likes.Add(userID)
			liked = true
		}
		return tx.Model(&model.Creation{}).
			Where("id = ?", id).
			Update("likes", c.Likes).Error
	})
	return liked, err
}

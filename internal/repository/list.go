package repository

import (
	"context"
	"errors"

	"reelist/internal/cache"
	"reelist/internal/models"

	"gorm.io/gorm"
)

// ListRepository defines persistence operations for movie lists.
type ListRepository interface {
	GetByID(ctx context.Context, id uint) (*models.List, error)
	Create(ctx context.Context, list *models.List) error
	// Delete removes the list and all movies that belong to it. Deleting a
	// list id that does not exist is a no-op.
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.List, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.List, error)
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository returns a new ListRepository implementation.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) GetByID(ctx context.Context, id uint) (*models.List, error) {
	var list models.List
	if err := r.db.WithContext(ctx).First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &list, nil
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cascade: child movies first, then the list itself.
		if err := tx.Where("list_id = ?", id).Delete(&models.Movie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.List{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateList(ctx, id)
	return nil
}

func (r *listRepository) ListAll(ctx context.Context) ([]models.List, error) {
	var lists []models.List
	if err := r.db.WithContext(ctx).Find(&lists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

func (r *listRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.List, error) {
	var lists []models.List
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&lists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

package repository

import (
	"context"
	"errors"

	"reelist/internal/models"

	"gorm.io/gorm"
)

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	// UpdateRating overwrites the rating and review of the movie.
	UpdateRating(ctx context.Context, id uint, rating, review string) error
	// Delete removes the movie; unknown ids are a no-op.
	Delete(ctx context.Context, id uint) error
	// ListAll returns all movies in reverse insertion order.
	ListAll(ctx context.Context) ([]models.Movie, error)
	ListByList(ctx context.Context, listID uint) ([]models.Movie, error)
	ListByCategory(ctx context.Context, category string) ([]models.Movie, error)
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository returns a new MovieRepository implementation.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Movie", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) UpdateRating(ctx context.Context, id uint, rating, review string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review": review})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Movie", id)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return movies, nil
}

func (r *movieRepository) ListByList(ctx context.Context, listID uint) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).Where("list_id = ?", listID).Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return movies, nil
}

func (r *movieRepository) ListByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).Where("category = ?", category).Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return movies, nil
}

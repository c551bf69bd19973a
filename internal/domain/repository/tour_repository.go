package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// TourRepository persists tours.
type TourRepository interface {
	List(ctx context.Context, userID int64) ([]domain.Tour, error)

	GetByID(ctx context.Context, id int64) (*domain.Tour, error)

	// TitleExists reports whether another live tour already uses the
	// title. excludeID skips the tour being updated.
	TitleExists(ctx context.Context, title string, excludeID int64) (bool, error)

	Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)

	Update(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)

	// Archive soft-deletes the tour.
	Archive(ctx context.Context, id int64) error

	// SetPublished sets or clears published_at.
	SetPublished(ctx context.Context, id int64, published bool) error

	// UpdateRating recomputes the tour's aggregate rating from its
	// reviews and stores it.
	UpdateRating(ctx context.Context, id int64) error
}

package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// StopRepository maintains a tour's ordered stop set and the branch
// graph between stops. Every mutating method runs in its own
// transaction and serializes order allocation by locking the owning
// tour row, so no two stops in a tour can persist the same order.
type StopRepository interface {
	// ListByTour returns the tour's live stops ordered by their
	// order column, with choices and routes attached.
	ListByTour(ctx context.Context, tourID int64) ([]domain.TourStop, error)

	// GetByID returns a single live stop belonging to the tour.
	GetByID(ctx context.Context, tourID, stopID int64) (*domain.TourStop, error)

	// NextOrder returns 1 for a tour with no stops, otherwise
	// max(order)+1.
	NextOrder(ctx context.Context, tourID int64) (int, error)

	// Create assigns the next order, persists the stop with its
	// optional location and its full choice set, atomically.
	Create(ctx context.Context, tourID int64, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice) (*domain.TourStop, error)

	// Update writes scalar attributes, upserts the location,
	// replaces the full choice set, and when routes is non-nil
	// synchronizes the route set (matching ids kept, missing ids
	// removed, new entries created). Atomic.
	Update(ctx context.Context, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice, routes []domain.StopRoute, syncRoutes bool) (*domain.TourStop, error)

	// Delete soft-deletes the stop unless it is still referenced.
	// The guard checks run in the same transaction as the archive
	// and short-circuit in a fixed order, each with its own error:
	// choice destination, tour start point, tour end point.
	Delete(ctx context.Context, tourID, stopID int64) error

	// Reorder moves the stop to the given order and shifts every
	// other stop at or past that position up by one. Returns the
	// tour's stops in their new order.
	Reorder(ctx context.Context, tourID, stopID int64, order int) ([]domain.TourStop, error)

	// NextRouteOrder returns the next free order for waypoints
	// between the given stop pair.
	NextRouteOrder(ctx context.Context, stopID, nextStopID int64) (int, error)
}

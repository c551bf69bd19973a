package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const stopColumns = `id, tour_id, title, description, location_type, "order",
	latitude, longitude, play_radius, created_at, updated_at, deleted_at`

type stopRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStopRepository creates the sqlx-backed StopRepository.
func NewStopRepository(db *DB, logger *zap.Logger) repository.StopRepository {
	return &stopRepository{
		db:     db,
		logger: logger,
	}
}

// lockTour takes a row lock on the tour. Every mutation of a tour's
// stop set goes through this lock, which serializes max(order)+1
// allocation and the reorder shift per tour.
func (r *stopRepository) lockTour(ctx context.Context, tx *sqlx.Tx, tourID int64) error {
	var id int64
	err := tx.GetContext(ctx, &id,
		`SELECT id FROM tours WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, tourID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrTourNotFound
	}
	if err != nil {
		return fmt.Errorf("lock tour %d: %w", tourID, err)
	}
	return nil
}

func nextStopOrder(ctx context.Context, q sqlx.QueryerContext, tourID int64) (int, error) {
	var next int
	err := sqlx.GetContext(ctx, q, &next,
		`SELECT COALESCE(MAX("order"), 0) + 1 FROM tour_stops
		 WHERE tour_id = $1 AND deleted_at IS NULL`, tourID)
	if err != nil {
		return 0, fmt.Errorf("next stop order for tour %d: %w", tourID, err)
	}
	return next, nil
}

func nextRouteOrder(ctx context.Context, q sqlx.QueryerContext, stopID, nextStopID int64) (int, error) {
	var next int
	err := sqlx.GetContext(ctx, q, &next,
		`SELECT COALESCE(MAX("order"), 0) + 1 FROM stop_routes
		 WHERE stop_id = $1 AND next_stop_id = $2`, stopID, nextStopID)
	if err != nil {
		return 0, fmt.Errorf("next route order for pair (%d,%d): %w", stopID, nextStopID, err)
	}
	return next, nil
}

func (r *stopRepository) NextOrder(ctx context.Context, tourID int64) (int, error) {
	return nextStopOrder(ctx, r.db, tourID)
}

func (r *stopRepository) NextRouteOrder(ctx context.Context, stopID, nextStopID int64) (int, error) {
	return nextRouteOrder(ctx, r.db, stopID, nextStopID)
}

func (r *stopRepository) Create(ctx context.Context, tourID int64, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice) (*domain.TourStop, error) {
	var stopID int64

	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.lockTour(ctx, tx, tourID); err != nil {
			return err
		}

		order, err := nextStopOrder(ctx, tx, tourID)
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &stopID,
			`INSERT INTO tour_stops (tour_id, title, description, location_type, "order",
				latitude, longitude, play_radius, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
			 RETURNING id`,
			tourID, stop.Title, stop.Description, stop.LocationType, order,
			stop.Latitude, stop.Longitude, stop.PlayRadius)
		if err != nil {
			return fmt.Errorf("insert stop: %w", err)
		}

		if location != nil {
			if err := upsertLocation(ctx, tx, stopID, location); err != nil {
				return err
			}
		}

		return replaceChoices(ctx, tx, stopID, choices)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("stop created",
		zap.Int64("tour_id", tourID),
		zap.Int64("stop_id", stopID),
	)

	return r.GetByID(ctx, tourID, stopID)
}

func (r *stopRepository) Update(ctx context.Context, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice, routes []domain.StopRoute, syncRoutes bool) (*domain.TourStop, error) {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.lockTour(ctx, tx, stop.TourID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE tour_stops
			 SET title = $1, description = $2, location_type = $3,
			     latitude = $4, longitude = $5, play_radius = $6, updated_at = now()
			 WHERE id = $7 AND deleted_at IS NULL`,
			stop.Title, stop.Description, stop.LocationType,
			stop.Latitude, stop.Longitude, stop.PlayRadius, stop.ID)
		if err != nil {
			return fmt.Errorf("update stop %d: %w", stop.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrStopNotFound
		}

		if location != nil {
			if err := upsertLocation(ctx, tx, stop.ID, location); err != nil {
				return err
			}
		}

		// The choice set is a value: callers supply the complete
		// desired list every time and the old set is discarded.
		if err := replaceChoices(ctx, tx, stop.ID, choices); err != nil {
			return err
		}

		if syncRoutes {
			return r.syncRoutes(ctx, tx, stop.ID, routes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, stop.TourID, stop.ID)
}

func upsertLocation(ctx context.Context, tx *sqlx.Tx, stopID int64, loc *domain.StopLocation) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stop_locations (stop_id, address1, address2, city, state, zipcode, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (stop_id) DO UPDATE SET
			address1 = EXCLUDED.address1,
			address2 = EXCLUDED.address2,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zipcode = EXCLUDED.zipcode,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude`,
		stopID, loc.Address1, loc.Address2, loc.City, loc.State, loc.Zipcode,
		loc.Latitude, loc.Longitude)
	if err != nil {
		return fmt.Errorf("upsert stop location: %w", err)
	}
	return nil
}

// replaceChoices deletes the stop's whole choice set and writes the
// new one. No diffing: unspecified choices are gone.
func replaceChoices(ctx context.Context, tx *sqlx.Tx, stopID int64, choices []domain.StopChoice) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stop_choices WHERE stop_id = $1`, stopID); err != nil {
		return fmt.Errorf("delete choices for stop %d: %w", stopID, err)
	}

	for i, choice := range choices {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stop_choices (stop_id, prompt, next_stop_id, "order")
			 VALUES ($1, $2, $3, $4)`,
			stopID, choice.Prompt, choice.NextStopID, i+1)
		if err != nil {
			return fmt.Errorf("insert choice for stop %d: %w", stopID, err)
		}
	}
	return nil
}

// syncRoutes reconciles the stop's route set against the incoming
// one: routes whose id matches an existing row are updated in place,
// rows absent from the incoming set are removed, and entries without
// an id are created with the next order for their stop pair.
func (r *stopRepository) syncRoutes(ctx context.Context, tx *sqlx.Tx, stopID int64, routes []domain.StopRoute) error {
	var existingIDs []int64
	if err := tx.SelectContext(ctx, &existingIDs,
		`SELECT id FROM stop_routes WHERE stop_id = $1`, stopID); err != nil {
		return fmt.Errorf("load routes for stop %d: %w", stopID, err)
	}

	existing := make(map[int64]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	keep := make([]int64, 0, len(routes))
	for _, route := range routes {
		if route.ID != 0 && existing[route.ID] {
			keep = append(keep, route.ID)
		}
	}

	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM stop_routes WHERE stop_id = $1`, stopID); err != nil {
			return fmt.Errorf("clear routes for stop %d: %w", stopID, err)
		}
	} else {
		query, args, err := sqlx.In(
			`DELETE FROM stop_routes WHERE stop_id = ? AND id NOT IN (?)`, stopID, keep)
		if err != nil {
			return fmt.Errorf("build route delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("delete stale routes for stop %d: %w", stopID, err)
		}
	}

	for _, route := range routes {
		if route.ID != 0 && existing[route.ID] {
			_, err := tx.ExecContext(ctx,
				`UPDATE stop_routes
				 SET next_stop_id = $1, latitude = $2, longitude = $3
				 WHERE id = $4 AND stop_id = $5`,
				route.NextStopID, route.Latitude, route.Longitude, route.ID, stopID)
			if err != nil {
				return fmt.Errorf("update route %d: %w", route.ID, err)
			}
			continue
		}

		order := route.Order
		if order == 0 {
			var err error
			order, err = nextRouteOrder(ctx, tx, stopID, route.NextStopID)
			if err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO stop_routes (stop_id, next_stop_id, "order", latitude, longitude)
			 VALUES ($1, $2, $3, $4, $5)`,
			stopID, route.NextStopID, order, route.Latitude, route.Longitude)
		if err != nil {
			return fmt.Errorf("insert route for stop %d: %w", stopID, err)
		}
	}
	return nil
}

// Delete archives the stop after running the three reference guards
// in their fixed order, all inside one transaction. Each guard
// short-circuits with its own error so callers can tell the refusal
// reasons apart. A refused delete removes nothing.
func (r *stopRepository) Delete(ctx context.Context, tourID, stopID int64) error {
	return r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.lockTour(ctx, tx, tourID); err != nil {
			return err
		}

		var count int
		err := tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM stop_choices WHERE next_stop_id = $1`, stopID)
		if err != nil {
			return fmt.Errorf("count choice references for stop %d: %w", stopID, err)
		}
		if count > 0 {
			return apperrors.ErrStopIsDestination
		}

		err = tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM tours WHERE start_point_id = $1 AND deleted_at IS NULL`, stopID)
		if err != nil {
			return fmt.Errorf("count start point references for stop %d: %w", stopID, err)
		}
		if count > 0 {
			return apperrors.ErrStopIsStartPoint
		}

		err = tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM tours WHERE end_point_id = $1 AND deleted_at IS NULL`, stopID)
		if err != nil {
			return fmt.Errorf("count end point references for stop %d: %w", stopID, err)
		}
		if count > 0 {
			return apperrors.ErrStopIsEndPoint
		}

		// Soft archive; remaining stops keep their order values.
		res, err := tx.ExecContext(ctx,
			`UPDATE tour_stops SET deleted_at = now(), updated_at = now()
			 WHERE id = $1 AND tour_id = $2 AND deleted_at IS NULL`, stopID, tourID)
		if err != nil {
			return fmt.Errorf("archive stop %d: %w", stopID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrStopNotFound
		}
		return nil
	})
}

// Reorder is an insert-and-shift, not a swap: the stop takes the
// requested order and everything at or past it moves up one, so two
// stops can never share an order value.
func (r *stopRepository) Reorder(ctx context.Context, tourID, stopID int64, order int) ([]domain.TourStop, error) {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.lockTour(ctx, tx, tourID); err != nil {
			return err
		}

		var id int64
		err := tx.GetContext(ctx, &id,
			`SELECT id FROM tour_stops
			 WHERE id = $1 AND tour_id = $2 AND deleted_at IS NULL`, stopID, tourID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrStopNotFound
		}
		if err != nil {
			return fmt.Errorf("load stop %d: %w", stopID, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tour_stops SET "order" = "order" + 1, updated_at = now()
			 WHERE tour_id = $1 AND "order" >= $2 AND id <> $3 AND deleted_at IS NULL`,
			tourID, order, stopID)
		if err != nil {
			return fmt.Errorf("shift stops for tour %d: %w", tourID, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tour_stops SET "order" = $1, updated_at = now() WHERE id = $2`,
			order, stopID)
		if err != nil {
			return fmt.Errorf("set order for stop %d: %w", stopID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.ListByTour(ctx, tourID)
}

func (r *stopRepository) ListByTour(ctx context.Context, tourID int64) ([]domain.TourStop, error) {
	var stops []domain.TourStop
	err := r.db.SelectContext(ctx, &stops,
		`SELECT `+stopColumns+` FROM tour_stops
		 WHERE tour_id = $1 AND deleted_at IS NULL
		 ORDER BY "order" ASC`, tourID)
	if err != nil {
		return nil, fmt.Errorf("list stops for tour %d: %w", tourID, err)
	}

	if err := r.attachRelations(ctx, stops); err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *stopRepository) GetByID(ctx context.Context, tourID, stopID int64) (*domain.TourStop, error) {
	var stop domain.TourStop
	err := r.db.GetContext(ctx, &stop,
		`SELECT `+stopColumns+` FROM tour_stops
		 WHERE id = $1 AND tour_id = $2 AND deleted_at IS NULL`, stopID, tourID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrStopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get stop %d: %w", stopID, err)
	}

	stops := []domain.TourStop{stop}
	if err := r.attachRelations(ctx, stops); err != nil {
		return nil, err
	}
	return &stops[0], nil
}

// attachRelations loads choices and routes for the given stops in two
// queries and distributes them.
func (r *stopRepository) attachRelations(ctx context.Context, stops []domain.TourStop) error {
	if len(stops) == 0 {
		return nil
	}

	ids := make([]int64, len(stops))
	index := make(map[int64]*domain.TourStop, len(stops))
	for i := range stops {
		ids[i] = stops[i].ID
		index[stops[i].ID] = &stops[i]
	}

	query, args, err := sqlx.In(
		`SELECT id, stop_id, prompt, next_stop_id, "order"
		 FROM stop_choices WHERE stop_id IN (?) ORDER BY "order" ASC`, ids)
	if err != nil {
		return fmt.Errorf("build choices query: %w", err)
	}
	var choices []domain.StopChoice
	if err := r.db.SelectContext(ctx, &choices, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load choices: %w", err)
	}
	for _, choice := range choices {
		stop := index[choice.StopID]
		stop.Choices = append(stop.Choices, choice)
	}

	query, args, err = sqlx.In(
		`SELECT id, stop_id, next_stop_id, "order", latitude, longitude
		 FROM stop_routes WHERE stop_id IN (?) ORDER BY next_stop_id ASC, "order" ASC`, ids)
	if err != nil {
		return fmt.Errorf("build routes query: %w", err)
	}
	var routes []domain.StopRoute
	if err := r.db.SelectContext(ctx, &routes, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	for _, route := range routes {
		stop := index[route.StopID]
		stop.Routes = append(stop.Routes, route)
	}

	return nil
}

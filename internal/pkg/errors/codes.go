package errors

import "net/http"

var (
	ErrTourNotFound = New(
		"TOUR_NOT_FOUND",
		"Tour not found",
		http.StatusNotFound,
	)

	ErrStopNotFound = New(
		"STOP_NOT_FOUND",
		"Stop not found",
		http.StatusNotFound,
	)

	ErrTourTitleTaken = New(
		"TOUR_TITLE_TAKEN",
		"A tour with this title already exists",
		http.StatusUnprocessableEntity,
	)

	// The three stop-delete refusals. Callers rely on these being
	// distinct, and on the check order: destination, start point, end point.
	ErrStopIsDestination = New(
		"STOP_IS_DESTINATION",
		"You cannot delete this stop because it is referenced in another stops destination points.",
		http.StatusUnprocessableEntity,
	)

	ErrStopIsStartPoint = New(
		"STOP_IS_START_POINT",
		"You cannot delete this stop because it set as the Tour's start point.",
		http.StatusUnprocessableEntity,
	)

	ErrStopIsEndPoint = New(
		"STOP_IS_END_POINT",
		"You cannot delete this stop because it set as the Tour's end point.",
		http.StatusUnprocessableEntity,
	)

	ErrValidation = New(
		"VALIDATION_FAILED",
		"Invalid request parameters",
		http.StatusUnprocessableEntity,
	)

	ErrTourNotPublished = New(
		"TOUR_NOT_PUBLISHED",
		"Tour not found",
		http.StatusNotFound,
	)

	ErrOrderConflict = New(
		"ORDER_CONFLICT",
		"Stop order allocation conflicted with a concurrent change",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

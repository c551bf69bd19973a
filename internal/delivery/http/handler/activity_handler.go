package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ActivityHandler receives tracking events from mobile devices.
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC *usecase.ActivityUseCase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUC: activityUC,
		logger:     logger,
	}
}

// TrackStop records a start/stop event against a stop.
func (h *ActivityHandler) TrackStop(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}
	stopID, err := c.ParamsInt("stop")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stop id"})
	}

	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	activity, err := h.activityUC.TrackStop(c.Context(), int64(tourID), int64(stopID), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "The activity was recorded successfully.", activity, nil)
}

// TrackTour records a start/stop event against the tour itself.
func (h *ActivityHandler) TrackTour(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	activity, err := h.activityUC.TrackTour(c.Context(), int64(tourID), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "The activity was recorded successfully.", activity, nil)
}

package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// StopHandler handles tour stop requests.
type StopHandler struct {
	stopUC *usecase.StopUseCase
	logger *zap.Logger
}

// NewStopHandler creates a new StopHandler.
func NewStopHandler(stopUC *usecase.StopUseCase, logger *zap.Logger) *StopHandler {
	return &StopHandler{
		stopUC: stopUC,
		logger: logger,
	}
}

// Index lists a tour's stops in order.
func (h *StopHandler) Index(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	stops, err := h.stopUC.List(c.Context(), int64(tourID))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "", stops, &utils.Meta{Total: len(stops)})
}

// Show returns one stop.
func (h *StopHandler) Show(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}
	stopID, err := c.ParamsInt("stop")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stop id"})
	}

	stop, err := h.stopUC.Get(c.Context(), int64(tourID), int64(stopID))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "", stop, nil)
}

// Store creates a stop at the end of the tour's sequence.
func (h *StopHandler) Store(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.CreateStopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stop, err := h.stopUC.Create(c.Context(), int64(tourID), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("The stop %s was created successfully.", stop.Title)
	return utils.SendSuccess(c, message, stop, nil)
}

// Update rewrites a stop, replacing its choice set and, when routes
// are supplied, synchronizing its route set.
func (h *StopHandler) Update(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}
	stopID, err := c.ParamsInt("stop")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stop id"})
	}

	var req dto.UpdateStopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stop, err := h.stopUC.Update(c.Context(), int64(tourID), int64(stopID), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("%s was updated successfully.", stop.Title)
	return utils.SendSuccess(c, message, stop, nil)
}

// Destroy archives a stop unless it is still referenced.
func (h *StopHandler) Destroy(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}
	stopID, err := c.ParamsInt("stop")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stop id"})
	}

	stop, err := h.stopUC.Get(c.Context(), int64(tourID), int64(stopID))
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.stopUC.Delete(c.Context(), int64(tourID), int64(stopID)); err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("%s was archived successfully.", stop.Title)
	return utils.SendSuccess(c, message, nil, nil)
}

// ChangeOrder moves a stop to a new position and returns the tour's
// stops in their resulting order.
func (h *StopHandler) ChangeOrder(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}
	stopID, err := c.ParamsInt("stop")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stop id"})
	}

	var req dto.ChangeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stops, err := h.stopUC.ChangeOrder(c.Context(), int64(tourID), int64(stopID), *req.Order)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "The stop order was updated successfully.", stops, &utils.Meta{Total: len(stops)})
}

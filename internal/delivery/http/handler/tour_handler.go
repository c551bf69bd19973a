package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// userIDHeader carries the caller identity set by the API gateway.
const userIDHeader = "X-User-ID"

// callerID extracts the gateway-supplied user id, 0 when absent.
func callerID(c *fiber.Ctx) int64 {
	id, err := strconv.ParseInt(c.Get(userIDHeader), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// TourHandler handles tour management requests.
type TourHandler struct {
	tourUC *usecase.TourUseCase
	logger *zap.Logger
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(tourUC *usecase.TourUseCase, logger *zap.Logger) *TourHandler {
	return &TourHandler{
		tourUC: tourUC,
		logger: logger,
	}
}

// Index lists the caller's tours.
func (h *TourHandler) Index(c *fiber.Ctx) error {
	tours, err := h.tourUC.List(c.Context(), callerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, "", tours, &utils.Meta{Total: len(tours)})
}

// Show returns one tour with its ordered stops.
func (h *TourHandler) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	tour, err := h.tourUC.Get(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, "", tour, nil)
}

// Store creates a tour.
func (h *TourHandler) Store(c *fiber.Ctx) error {
	var req dto.CreateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	tour, err := h.tourUC.Create(c.Context(), callerID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("%s was created successfully.", tour.Title)
	return utils.SendSuccess(c, message, tour, nil)
}

// Update rewrites a tour's editable fields.
func (h *TourHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.UpdateTourRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	tour, err := h.tourUC.Update(c.Context(), int64(id), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("%s was updated successfully.", tour.Title)
	return utils.SendSuccess(c, message, tour, nil)
}

// Destroy archives a tour.
func (h *TourHandler) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	tour, err := h.tourUC.Get(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.tourUC.Delete(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}

	message := fmt.Sprintf("%s was archived successfully.", tour.Title)
	return utils.SendSuccess(c, message, nil, nil)
}

// Publish makes a tour visible to mobile clients.
func (h *TourHandler) Publish(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	if err := h.tourUC.Publish(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, "The tour was published successfully.", nil, nil)
}

// Unpublish hides a tour from mobile clients again.
func (h *TourHandler) Unpublish(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	if err := h.tourUC.Unpublish(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, "The tour was unpublished successfully.", nil, nil)
}

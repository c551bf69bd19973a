package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ReviewHandler handles tour review requests from mobile clients.
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// Index lists a tour's reviews.
func (h *ReviewHandler) Index(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	reviews, err := h.reviewUC.List(c.Context(), int64(tourID))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, "", reviews, &utils.Meta{Total: len(reviews)})
}

// Store saves the caller's review, replacing any earlier one.
func (h *ReviewHandler) Store(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	review, err := h.reviewUC.Submit(c.Context(), int64(tourID), callerID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "Thank you for your review.", review, nil)
}

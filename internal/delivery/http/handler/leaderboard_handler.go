package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// LeaderboardHandler serves ranked score lists.
type LeaderboardHandler struct {
	leaderboardUC *usecase.LeaderboardUseCase
	logger        *zap.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardUC *usecase.LeaderboardUseCase, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardUC: leaderboardUC,
		logger:        logger,
	}
}

// Store records the caller's score for the tour.
func (h *LeaderboardHandler) Store(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	card, err := h.leaderboardUC.SubmitScore(c.Context(), int64(tourID), callerID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "Your score was recorded successfully.", card, nil)
}

// Show returns the tour's top scores.
func (h *LeaderboardHandler) Show(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	entries, err := h.leaderboardUC.Show(c.Context(), int64(tourID))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "", entries, &utils.Meta{Total: len(entries)})
}

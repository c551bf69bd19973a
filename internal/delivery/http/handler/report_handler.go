package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tour-microservice/internal/pkg/utils"
	"github.com/tour-microservice/internal/pkg/validator"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ReportHandler serves analytics reports.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// StopOverview returns visit, dwell-time and action figures for
// every stop of a tour over the requested date range.
func (h *ReportHandler) StopOverview(c *fiber.Ctx) error {
	tourID, err := c.ParamsInt("tour")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid tour id"})
	}

	var req dto.StopOverviewRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start, _ := time.Parse(dateLayout, req.Start)
	end, _ := time.Parse(dateLayout, req.End)

	report, err := h.reportUC.StopOverview(c.Context(), int64(tourID), start, end)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, "", report, nil)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/middleware"
	"github.com/growthflow/growthflow-api/internal/models"
	"github.com/growthflow/growthflow-api/internal/services"
)

type generateReportRequest struct {
	Type      string   `json:"type"`
	Tone      string   `json:"tone"`
	GoalIDs   []string `json:"goalIds"`
	StartDate string   `json:"startDate" validate:"required"`
	EndDate   string   `json:"endDate" validate:"required"`
}

// GenerateReport drafts a performance report from the user's goals,
// achievements and completed tasks within the date range.
func GenerateReport(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req generateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StartDate == "" || req.EndDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Start and end dates are required",
		})
	}
	if req.Type == "" {
		req.Type = "Weekly"
	}
	if req.Tone == "" {
		req.Tone = "Manager-ready"
	}

	goalQuery := database.DB.Where("user_id = ?", userID)
	if len(req.GoalIDs) > 0 {
		goalQuery = goalQuery.Where("id IN ?", req.GoalIDs)
	}
	var goals []models.Goal
	goalQuery.Find(&goals)

	var achievements []models.Achievement
	database.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, req.StartDate, req.EndDate).
		Find(&achievements)

	var tasks []models.Task
	database.DB.Where("user_id = ? AND status = ? AND completed_at IS NOT NULL", userID, models.StatusCompleted).
		Where("completed_at >= ? AND completed_at <= ?", req.StartDate, req.EndDate+"T23:59:59Z").
		Find(&tasks)

	report := services.AI.GenerateReport(c.Context(), services.ReportInput{
		Type:         req.Type,
		Tone:         req.Tone,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Goals:        goals,
		Achievements: achievements,
		Tasks:        tasks,
	})

	return c.JSON(fiber.Map{
		"report": report,
	})
}

// GenerateReflection drafts a short encouraging reflection over the user's
// habits and goals.
func GenerateReflection(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var habits []models.Habit
	database.DB.Where("user_id = ?", userID).Find(&habits)

	var goals []models.Goal
	database.DB.Where("user_id = ?", userID).Find(&goals)

	return c.JSON(fiber.Map{
		"reflection": services.AI.GenerateReflection(c.Context(), habits, goals),
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/growthflow/growthflow-api/internal/services"
)

type smartGoalRequest struct {
	Text string `json:"text" validate:"required"`
}

// GenerateSmartGoal rewrites a raw goal description into SMART form. The
// original text comes back unchanged when generation is unavailable.
func GenerateSmartGoal(c *fiber.Ctx) error {
	var req smartGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	return c.JSON(fiber.Map{
		"text": services.AI.GenerateSmartGoal(c.Context(), req.Text),
	})
}

type suggestMilestonesRequest struct {
	Title     string `json:"title" validate:"required"`
	Timeframe string `json:"timeframe"`
}

// SuggestMilestones proposes milestones for a goal. Returns an empty list
// when generation is unavailable.
func SuggestMilestones(c *fiber.Ctx) error {
	var req suggestMilestonesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	return c.JSON(fiber.Map{
		"milestones": services.AI.SuggestMilestones(c.Context(), req.Title, req.Timeframe),
	})
}

type classifyAchievementRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// ClassifyAchievement classifies an achievement and drafts its summary.
// Falls back to Other with the raw description.
func ClassifyAchievement(c *fiber.Ctx) error {
	var req classifyAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	return c.JSON(services.AI.ClassifyAchievement(c.Context(), req.Title, req.Description))
}

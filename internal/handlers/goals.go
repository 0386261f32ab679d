package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/middleware"
	"github.com/growthflow/growthflow-api/internal/models"
	"github.com/growthflow/growthflow-api/internal/services"
	"gorm.io/gorm"
)

// findUserGoal loads the goal from the :id param, scoped to the
// authenticated user. Returns a non-nil fiber error response on failure.
func findUserGoal(c *fiber.Ctx) (*models.Goal, error) {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	return &goal, nil
}

func GetGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).
		Preload("Milestones").
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	return c.JSON(goals)
}

func GetGoal(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	database.DB.Where("goal_id = ?", goal.ID).Find(&goal.Milestones)
	return c.JSON(goal)
}

func CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
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

	category := req.Category
	if category == "" {
		category = models.CategoryCareer
	}
	if category != models.CategoryCareer && category != models.CategoryPersonal {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category must be Career or Personal",
		})
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Category:    category,
		Description: req.Description,
		Timeframe:   req.Timeframe,
		Tags:        req.Tags,
	}

	for _, m := range req.Milestones {
		if m.Description == "" {
			continue
		}
		goal.Milestones = append(goal.Milestones, models.Milestone{
			Description: m.Description,
			Status:      models.StatusPending,
			DueDate:     m.DueDate,
		})
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func UpdateGoal(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title cannot be empty",
			})
		}
		goal.Title = *req.Title
	}
	if req.Category != nil {
		if *req.Category != models.CategoryCareer && *req.Category != models.CategoryPersonal {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category must be Career or Personal",
			})
		}
		goal.Category = *req.Category
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Timeframe != nil {
		goal.Timeframe = *req.Timeframe
	}
	if req.Tags != nil {
		goal.Tags = *req.Tags
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
	}

	if err := database.DB.Save(goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	// Completion pinning and progress derivation happen in the cascade
	if err := services.RecalculateGoalProgress(goal.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	database.DB.Preload("Milestones").First(goal, "id = ?", goal.ID)
	return c.JSON(goal)
}

func DeleteGoal(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	if err := database.DB.Where("goal_id = ?", goal.ID).Delete(&models.Milestone{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	// Tasks survive the goal, they just lose the link
	if err := database.DB.Model(&models.Task{}).
		Where("linked_goal_id = ?", goal.ID).
		Update("linked_goal_id", nil).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unlink tasks",
		})
	}

	if err := database.DB.Delete(goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AddMilestone(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.CreateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description is required",
		})
	}

	milestone := models.Milestone{
		GoalID:      goal.ID,
		Description: req.Description,
		Status:      models.StatusPending,
		DueDate:     req.DueDate,
	}

	if err := database.DB.Create(&milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create milestone",
		})
	}

	if err := services.RecalculateGoalProgress(goal.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(milestone)
}

// findGoalMilestone loads the milestone from the :milestoneId param within
// the given goal.
func findGoalMilestone(c *fiber.Ctx, goalID uuid.UUID) (*models.Milestone, error) {
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
	}

	var milestone models.Milestone
	if err := database.DB.Where("id = ? AND goal_id = ?", milestoneID, goalID).First(&milestone).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
	}
	return &milestone, nil
}

func UpdateMilestone(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	milestone, fiberErr := findGoalMilestone(c, goal.ID)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.UpdateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Description != nil {
		milestone.Description = *req.Description
	}
	if req.DueDate != nil {
		milestone.DueDate = *req.DueDate
	}

	if err := database.DB.Save(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update milestone",
		})
	}

	return c.JSON(milestone)
}

func ToggleMilestone(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	milestone, fiberErr := findGoalMilestone(c, goal.ID)
	if fiberErr != nil {
		return fiberErr
	}

	if milestone.Status == models.StatusCompleted {
		milestone.Status = models.StatusPending
	} else {
		milestone.Status = models.StatusCompleted
	}

	if err := database.DB.Save(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle milestone",
		})
	}

	if err := services.RecalculateGoalProgress(goal.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	return c.JSON(milestone)
}

func DeleteMilestone(c *fiber.Ctx) error {
	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	milestone, fiberErr := findGoalMilestone(c, goal.ID)
	if fiberErr != nil {
		return fiberErr
	}

	if err := database.DB.Delete(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete milestone",
		})
	}

	if err := services.RecalculateGoalProgress(goal.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ConvertMilestone turns a milestone into a linked task on one of the
// user's lists (the default list unless one is given).
func ConvertMilestone(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	goal, fiberErr := findUserGoal(c)
	if fiberErr != nil {
		return fiberErr
	}

	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
	}

	var req models.ConvertMilestoneRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var list models.TaskList
	if req.ListID != nil {
		if err := database.DB.Where("id = ? AND user_id = ?", *req.ListID, userID).First(&list).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task list not found",
			})
		}
	} else {
		if err := database.DB.Where("user_id = ? AND is_default = ?", userID, true).First(&list).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No default task list",
			})
		}
	}

	task, err := services.ConvertMilestoneToTask(userID, goal.ID, milestoneID, list.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to convert milestone",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

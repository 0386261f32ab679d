package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/middleware"
	"github.com/growthflow/growthflow-api/internal/models"
	"github.com/growthflow/growthflow-api/internal/services"
)

func GetTaskLists(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var lists []models.TaskList
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&lists).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task lists",
		})
	}

	return c.JSON(lists)
}

func CreateTaskList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateTaskListRequest
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

	list := models.TaskList{
		UserID: userID,
		Title:  req.Title,
	}

	if err := database.DB.Create(&list).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task list",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(list)
}

func UpdateTaskList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var list models.TaskList
	if err := database.DB.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task list not found",
		})
	}

	var req models.UpdateTaskListRequest
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
		list.Title = *req.Title
	}

	if err := database.DB.Save(&list).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task list",
		})
	}

	return c.JSON(list)
}

// DeleteTaskList removes a list and its tasks, then recomputes every goal
// those tasks were linked to.
func DeleteTaskList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid list ID",
		})
	}

	var list models.TaskList
	if err := database.DB.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task list not found",
		})
	}

	if list.IsDefault {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Default list cannot be deleted",
		})
	}

	// Collect affected goals before the tasks disappear
	var tasks []models.Task
	database.DB.Where("list_id = ?", list.ID).Find(&tasks)

	affected := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		if t.LinkedGoalID != nil {
			affected = append(affected, *t.LinkedGoalID)
		}
	}

	if err := database.DB.Where("list_id = ?", list.ID).Delete(&models.Task{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete tasks",
		})
	}

	if err := database.DB.Delete(&list).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task list",
		})
	}

	if err := services.RecalculateGoals(affected); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GetTasks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if listParam := c.Query("listId"); listParam != "" {
		listID, err := uuid.Parse(listParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid list ID",
			})
		}
		query = query.Where("list_id = ?", listID)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tasks",
		})
	}

	return c.JSON(tasks)
}

// verifyGoalLink checks that a linked goal belongs to the user.
func verifyGoalLink(userID uuid.UUID, goalID uuid.UUID) bool {
	var goal models.Goal
	return database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error == nil
}

func CreateTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateTaskRequest
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

	// Omitting the list drops the task into the default list
	var list models.TaskList
	listQuery := database.DB.Where("user_id = ?", userID)
	if req.ListID != uuid.Nil {
		listQuery = listQuery.Where("id = ?", req.ListID)
	} else {
		listQuery = listQuery.Where("is_default = ?", true)
	}
	if err := listQuery.First(&list).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task list not found",
		})
	}

	if req.LinkedGoalID != nil && !verifyGoalLink(userID, *req.LinkedGoalID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Linked goal not found",
		})
	}

	task := models.Task{
		UserID:       userID,
		ListID:       list.ID,
		LinkedGoalID: req.LinkedGoalID,
		Title:        req.Title,
		Details:      req.Details,
		DueDate:      req.DueDate,
		Status:       models.StatusPending,
	}

	if err := database.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task",
		})
	}

	if task.LinkedGoalID != nil {
		if err := services.RecalculateGoalProgress(*task.LinkedGoalID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to recalculate progress",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func UpdateTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var task models.Task
	if err := database.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	previousGoalID := task.LinkedGoalID

	if req.ListID != nil {
		var list models.TaskList
		if err := database.DB.Where("id = ? AND user_id = ?", *req.ListID, userID).First(&list).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task list not found",
			})
		}
		task.ListID = list.ID
	}
	if req.ClearLink {
		task.LinkedGoalID = nil
	} else if req.LinkedGoalID != nil {
		if !verifyGoalLink(userID, *req.LinkedGoalID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Linked goal not found",
			})
		}
		task.LinkedGoalID = req.LinkedGoalID
	}
	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title cannot be empty",
			})
		}
		task.Title = *req.Title
	}
	if req.Details != nil {
		task.Details = *req.Details
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Status != nil {
		if *req.Status != models.StatusPending && *req.Status != models.StatusCompleted {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status must be pending or completed",
			})
		}
		applyTaskStatus(&task, *req.Status)
	}

	if err := database.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}

	// Both ends of a moved link need a recompute
	affected := []uuid.UUID{}
	if task.LinkedGoalID != nil {
		affected = append(affected, *task.LinkedGoalID)
	}
	if previousGoalID != nil && (task.LinkedGoalID == nil || *previousGoalID != *task.LinkedGoalID) {
		affected = append(affected, *previousGoalID)
	}
	if err := services.RecalculateGoals(affected); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	return c.JSON(task)
}

func applyTaskStatus(task *models.Task, status string) {
	task.Status = status
	if status == models.StatusCompleted {
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}
}

func ToggleTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var task models.Task
	if err := database.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	if task.Status == models.StatusCompleted {
		applyTaskStatus(&task, models.StatusPending)
	} else {
		applyTaskStatus(&task, models.StatusCompleted)
	}

	if err := database.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle task",
		})
	}

	if task.LinkedGoalID != nil {
		if err := services.RecalculateGoalProgress(*task.LinkedGoalID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to recalculate progress",
			})
		}
	}

	return c.JSON(task)
}

func DeleteTask(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var task models.Task
	if err := database.DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	if err := database.DB.Delete(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task",
		})
	}

	if task.LinkedGoalID != nil {
		if err := services.RecalculateGoalProgress(*task.LinkedGoalID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to recalculate progress",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

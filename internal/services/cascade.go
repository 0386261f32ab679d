package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/models"
	"github.com/growthflow/growthflow-api/internal/progress"
	"gorm.io/gorm"
)

// RecalculateGoalProgress reloads a goal's milestones and linked tasks and
// persists the derived progress. Callers must persist the triggering
// mutation first so the recompute sees post-mutation state. A goal that no
// longer exists is a no-op; read and write failures propagate.
func RecalculateGoalProgress(goalID uuid.UUID) error {
	var goal models.Goal
	if err := database.DB.First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	updates := map[string]interface{}{}
	if goal.IsCompleted {
		updates["progress"] = 100
		if goal.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = &now
		}
	} else {
		var milestones []models.Milestone
		if err := database.DB.Where("goal_id = ?", goalID).Find(&milestones).Error; err != nil {
			return err
		}

		var linkedTasks []models.Task
		if err := database.DB.Where("linked_goal_id = ?", goalID).Find(&linkedTasks).Error; err != nil {
			return err
		}

		doneMilestones := 0
		for _, m := range milestones {
			if m.Status == models.StatusCompleted {
				doneMilestones++
			}
		}
		doneTasks := 0
		for _, t := range linkedTasks {
			if t.Status == models.StatusCompleted {
				doneTasks++
			}
		}

		updates["progress"] = progress.GoalProgress(
			doneMilestones, len(milestones), doneTasks, len(linkedTasks), goal.Progress)
		updates["completed_at"] = nil
	}

	return database.DB.Model(&models.Goal{}).Where("id = ?", goalID).Updates(updates).Error
}

// RecalculateGoals recomputes a de-duplicated set of goals. Handlers collect
// affected goal ids from a mutation and hand them off here, keeping the
// cascade explicit instead of hiding it inside saves.
func RecalculateGoals(goalIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(goalIDs))
	for _, id := range goalIDs {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		if err := RecalculateGoalProgress(id); err != nil {
			return err
		}
	}
	return nil
}

// ConvertMilestoneToTask turns a goal's milestone into a linked task in one
// transaction: the task is created with the milestone's completion state,
// the milestone is removed, and the goal is recomputed. At no point do both
// count toward progress.
func ConvertMilestoneToTask(userID, goalID, milestoneID, listID uuid.UUID) (*models.Task, error) {
	var milestone models.Milestone
	if err := database.DB.Where("id = ? AND goal_id = ?", milestoneID, goalID).First(&milestone).Error; err != nil {
		return nil, err
	}

	task := models.Task{
		UserID:       userID,
		ListID:       listID,
		LinkedGoalID: &goalID,
		Title:        milestone.Description,
		DueDate:      milestone.DueDate,
		Status:       milestone.Status,
	}
	if milestone.Status == models.StatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return tx.Delete(&milestone).Error
	})
	if err != nil {
		return nil, err
	}

	if err := RecalculateGoalProgress(goalID); err != nil {
		return nil, err
	}
	return &task, nil
}

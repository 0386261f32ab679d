package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/middleware"
	"github.com/growthflow/growthflow-api/internal/models"
)

func GetAchievements(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var achievements []models.Achievement
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&achievements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch achievements",
		})
	}

	return c.JSON(achievements)
}

func CreateAchievement(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateAchievementRequest
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

	classification := req.Classification
	if classification == "" {
		classification = models.AchievementOther
	}
	if !models.ValidAchievementType(classification) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid classification",
		})
	}

	achievement := models.Achievement{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Classification: classification,
		Summary:        req.Summary,
		Project:        req.Project,
		Date:           req.Date,
		EvidenceURL:    req.EvidenceURL,
	}

	if err := database.DB.Create(&achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create achievement",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

func findUserAchievement(c *fiber.Ctx) (*models.Achievement, error) {
	userID := middleware.GetUserID(c)
	achievementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement ID",
		})
	}

	var achievement models.Achievement
	if err := database.DB.Where("id = ? AND user_id = ?", achievementID, userID).First(&achievement).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Achievement not found",
		})
	}
	return &achievement, nil
}

func UpdateAchievement(c *fiber.Ctx) error {
	achievement, fiberErr := findUserAchievement(c)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.UpdateAchievementRequest
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
		achievement.Title = *req.Title
	}
	if req.Description != nil {
		achievement.Description = *req.Description
	}
	if req.Classification != nil {
		if !models.ValidAchievementType(*req.Classification) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid classification",
			})
		}
		achievement.Classification = *req.Classification
	}
	if req.Summary != nil {
		achievement.Summary = *req.Summary
	}
	if req.Project != nil {
		achievement.Project = *req.Project
	}
	if req.Date != nil {
		achievement.Date = *req.Date
	}
	if req.EvidenceURL != nil {
		achievement.EvidenceURL = *req.EvidenceURL
	}

	if err := database.DB.Save(achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update achievement",
		})
	}

	return c.JSON(achievement)
}

func DeleteAchievement(c *fiber.Ctx) error {
	achievement, fiberErr := findUserAchievement(c)
	if fiberErr != nil {
		return fiberErr
	}

	if err := database.DB.Delete(achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete achievement",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

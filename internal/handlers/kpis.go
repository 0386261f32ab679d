package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/middleware"
	"github.com/growthflow/growthflow-api/internal/models"
	"github.com/growthflow/growthflow-api/internal/progress"
)

// KPIView is a KPI with its derived achievement percentage and severity
// band. Neither is ever stored.
type KPIView struct {
	models.KPI
	Achievement int    `json:"achievement"`
	Band        string `json:"band"`
}

func toKPIView(kpi models.KPI) KPIView {
	percent := progress.KPIAchievement(kpi.CurrentValue, kpi.TargetValue)
	return KPIView{
		KPI:         kpi,
		Achievement: percent,
		Band:        progress.KPIBand(percent),
	}
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return &user, nil
}

// GetKPIs returns the user's own KPIs plus department-level KPIs owned by
// anyone in the same department.
func GetKPIs(c *fiber.Ctx) error {
	user, fiberErr := currentUser(c)
	if fiberErr != nil {
		return fiberErr
	}

	var kpis []models.KPI
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&kpis).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch KPIs",
		})
	}

	// Department KPIs owned by colleagues are visible read-only
	if user.Department != "" {
		var departmentKPIs []models.KPI
		database.DB.
			Joins("JOIN users ON users.id = kpis.user_id").
			Where("kpis.level = ? AND users.department = ? AND kpis.user_id != ?",
				models.KPILevelDepartment, user.Department, user.ID).
			Find(&departmentKPIs)
		kpis = append(kpis, departmentKPIs...)
	}

	views := make([]KPIView, len(kpis))
	for i, kpi := range kpis {
		views[i] = toKPIView(kpi)
	}
	return c.JSON(views)
}

func CreateKPI(c *fiber.Ctx) error {
	user, fiberErr := currentUser(c)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.CreateKPIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}
	if req.TargetValue == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target value is required",
		})
	}

	kpiType := req.Type
	if kpiType == "" {
		kpiType = models.KPITypeNumeric
	}
	switch kpiType {
	case models.KPITypeNumeric, models.KPITypePercentage, models.KPITypeCurrency:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be numeric, percentage or currency",
		})
	}

	level := req.Level
	if level == "" {
		level = models.KPILevelIndividual
	}
	if level != models.KPILevelIndividual && level != models.KPILevelDepartment {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Level must be individual or department",
		})
	}
	if level == models.KPILevelDepartment && !user.IsDepartmentHead() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only department heads can create department KPIs",
		})
	}

	weight := req.Weight
	if weight == 0 {
		weight = 1
	}

	kpi := models.KPI{
		UserID:        user.ID,
		Name:          req.Name,
		Description:   req.Description,
		Type:          kpiType,
		TargetValue:   *req.TargetValue,
		CurrentValue:  req.CurrentValue,
		Weight:        weight,
		Level:         level,
		LinkedGoalIDs: req.LinkedGoalIDs,
		Notes:         req.Notes,
	}

	if err := database.DB.Create(&kpi).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create KPI",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toKPIView(kpi))
}

// findWritableKPI loads the KPI from the :id param if the user may modify
// it: the owner always, a department head for department-level KPIs within
// their department.
func findWritableKPI(c *fiber.Ctx, user *models.User) (*models.KPI, error) {
	kpiID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid KPI ID",
		})
	}

	var kpi models.KPI
	if err := database.DB.First(&kpi, "id = ?", kpiID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "KPI not found",
		})
	}

	if kpi.UserID == user.ID {
		return &kpi, nil
	}

	if kpi.Level == models.KPILevelDepartment && user.IsDepartmentHead() && user.Department != "" {
		var owner models.User
		if err := database.DB.First(&owner, "id = ?", kpi.UserID).Error; err == nil && owner.Department == user.Department {
			return &kpi, nil
		}
	}

	return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "KPI not found",
	})
}

func UpdateKPI(c *fiber.Ctx) error {
	user, fiberErr := currentUser(c)
	if fiberErr != nil {
		return fiberErr
	}

	kpi, fiberErr := findWritableKPI(c, user)
	if fiberErr != nil {
		return fiberErr
	}

	var req models.UpdateKPIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		if *req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Name cannot be empty",
			})
		}
		kpi.Name = *req.Name
	}
	if req.Description != nil {
		kpi.Description = *req.Description
	}
	if req.Type != nil {
		switch *req.Type {
		case models.KPITypeNumeric, models.KPITypePercentage, models.KPITypeCurrency:
			kpi.Type = *req.Type
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Type must be numeric, percentage or currency",
			})
		}
	}
	if req.TargetValue != nil {
		kpi.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		kpi.CurrentValue = *req.CurrentValue
	}
	if req.Weight != nil {
		kpi.Weight = *req.Weight
	}
	if req.LinkedGoalIDs != nil {
		kpi.LinkedGoalIDs = *req.LinkedGoalIDs
	}
	if req.Notes != nil {
		kpi.Notes = *req.Notes
	}

	if err := database.DB.Save(kpi).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update KPI",
		})
	}

	return c.JSON(toKPIView(*kpi))
}

// DeleteKPI removes a KPI. Children of a deleted department KPI keep their
// dangling parent reference, which reads as "no parent".
func DeleteKPI(c *fiber.Ctx) error {
	user, fiberErr := currentUser(c)
	if fiberErr != nil {
		return fiberErr
	}

	kpi, fiberErr := findWritableKPI(c, user)
	if fiberErr != nil {
		return fiberErr
	}

	if err := database.DB.Delete(kpi).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete KPI",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LinkKPIChildren replaces the child set of a department KPI: every KPI
// currently pointing at the parent is detached, then the given set is
// attached. Department heads only, scoped to their department.
func LinkKPIChildren(c *fiber.Ctx) error {
	user, fiberErr := currentUser(c)
	if fiberErr != nil {
		return fiberErr
	}

	if !user.IsDepartmentHead() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only department heads can link KPIs",
		})
	}

	parentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid KPI ID",
		})
	}

	var parent models.KPI
	if err := database.DB.First(&parent, "id = ?", parentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "KPI not found",
		})
	}
	if parent.Level != models.KPILevelDepartment {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Parent must be a department-level KPI",
		})
	}

	var owner models.User
	if err := database.DB.First(&owner, "id = ?", parent.UserID).Error; err != nil || owner.Department != user.Department {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "KPI is outside your department",
		})
	}

	var req models.LinkChildrenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Children must be individual KPIs owned within the department
	for _, childID := range req.ChildIDs {
		var child models.KPI
		if err := database.DB.
			Joins("JOIN users ON users.id = kpis.user_id").
			Where("kpis.id = ? AND kpis.level = ? AND users.department = ?",
				childID, models.KPILevelIndividual, user.Department).
			First(&child).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Child KPI not found in your department",
			})
		}
	}

	// Detach all current children, then attach the new set
	if err := database.DB.Model(&models.KPI{}).
		Where("parent_kpi_id = ?", parent.ID).
		Update("parent_kpi_id", nil).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detach children",
		})
	}

	if len(req.ChildIDs) > 0 {
		if err := database.DB.Model(&models.KPI{}).
			Where("id IN ?", req.ChildIDs).
			Update("parent_kpi_id", parent.ID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to attach children",
			})
		}
	}

	var children []models.KPI
	database.DB.Where("parent_kpi_id = ?", parent.ID).Find(&children)

	views := make([]KPIView, len(children))
	for i, child := range children {
		views[i] = toKPIView(child)
	}
	return c.JSON(fiber.Map{
		"parent":   toKPIView(parent),
		"children": views,
	})
}

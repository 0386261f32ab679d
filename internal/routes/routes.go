package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/growthflow/growthflow-api/internal/handlers"
	"github.com/growthflow/growthflow-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)
	protected.Post("/me/avatar", handlers.UploadAvatar)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Get("/:id", handlers.GetGoal)
	goals.Put("/:id", handlers.UpdateGoal)
	goals.Delete("/:id", handlers.DeleteGoal)

	goals.Post("/:id/milestones", handlers.AddMilestone)
	goals.Put("/:id/milestones/:milestoneId", handlers.UpdateMilestone)
	goals.Post("/:id/milestones/:milestoneId/toggle", handlers.ToggleMilestone)
	goals.Delete("/:id/milestones/:milestoneId", handlers.DeleteMilestone)
	goals.Post("/:id/milestones/:milestoneId/convert", handlers.ConvertMilestone)

	lists := protected.Group("/task-lists")
	lists.Get("/", handlers.GetTaskLists)
	lists.Post("/", handlers.CreateTaskList)
	lists.Put("/:id", handlers.UpdateTaskList)
	lists.Delete("/:id", handlers.DeleteTaskList)

	tasks := protected.Group("/tasks")
	tasks.Get("/", handlers.GetTasks)
	tasks.Post("/", handlers.CreateTask)
	tasks.Put("/:id", handlers.UpdateTask)
	tasks.Post("/:id/toggle", handlers.ToggleTask)
	tasks.Delete("/:id", handlers.DeleteTask)

	kpis := protected.Group("/kpis")
	kpis.Get("/", handlers.GetKPIs)
	kpis.Post("/", handlers.CreateKPI)
	kpis.Put("/:id", handlers.UpdateKPI)
	kpis.Delete("/:id", handlers.DeleteKPI)
	kpis.Put("/:id/children", handlers.LinkKPIChildren)

	achievements := protected.Group("/achievements")
	achievements.Get("/", handlers.GetAchievements)
	achievements.Post("/", handlers.CreateAchievement)
	achievements.Put("/:id", handlers.UpdateAchievement)
	achievements.Delete("/:id", handlers.DeleteAchievement)

	habits := protected.Group("/habits")
	habits.Get("/", handlers.GetHabits)
	habits.Post("/", handlers.CreateHabit)
	habits.Post("/:id/toggle", handlers.ToggleHabitDate)
	habits.Delete("/:id", handlers.DeleteHabit)

	ai := protected.Group("/ai")
	ai.Post("/smart-goal", handlers.GenerateSmartGoal)
	ai.Post("/milestones", handlers.SuggestMilestones)
	ai.Post("/classify-achievement", handlers.ClassifyAchievement)

	reports := protected.Group("/reports")
	reports.Post("/", handlers.GenerateReport)
	reports.Post("/reflection", handlers.GenerateReflection)

	// Serve uploaded avatars
	app.Static("/uploads", "./uploads")
}

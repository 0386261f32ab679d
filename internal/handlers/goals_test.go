package handlers_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/models"
)

func createGoal(t *testing.T, app *fiber.App, token string, body map[string]any) models.Goal {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/goals", token, body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create goal returned %d, want 201", resp.StatusCode)
	}
	var goal models.Goal
	decodeJSON(t, resp, &goal)
	return goal
}

func getGoal(t *testing.T, app *fiber.App, token string, id string) models.Goal {
	t.Helper()
	resp := doJSON(t, app, "GET", "/api/goals/"+id, token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get goal returned %d, want 200", resp.StatusCode)
	}
	var goal models.Goal
	decodeJSON(t, resp, &goal)
	return goal
}

func TestGoalProgressThroughAPI(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	goal := createGoal(t, app, token, map[string]any{
		"title":    "Ship v2",
		"category": models.CategoryCareer,
		"milestones": []map[string]any{
			{"description": "Write design doc"},
			{"description": "Cut release branch"},
		},
	})
	if goal.Progress != 0 || len(goal.Milestones) != 2 {
		t.Fatalf("unexpected new goal: %#v", goal)
	}

	// Completing one of two milestones lands at 50
	resp := doJSON(t, app, "POST",
		"/api/goals/"+goal.ID.String()+"/milestones/"+goal.Milestones[0].ID.String()+"/toggle",
		token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("milestone toggle returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
	if g := getGoal(t, app, token, goal.ID.String()); g.Progress != 50 {
		t.Fatalf("progress after milestone toggle = %d, want 50", g.Progress)
	}

	// A completed linked task makes it 2 of 3
	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]any{
		"title":        "Fix release blocker",
		"linkedGoalId": goal.ID.String(),
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create task returned %d, want 201", resp.StatusCode)
	}
	var task models.Task
	decodeJSON(t, resp, &task)

	resp = doJSON(t, app, "POST", "/api/tasks/"+task.ID.String()+"/toggle", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("task toggle returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
	if g := getGoal(t, app, token, goal.ID.String()); g.Progress != 67 {
		t.Fatalf("progress after linked task = %d, want 67", g.Progress)
	}

	// Deleting the task drops it back to 50
	resp = doJSON(t, app, "DELETE", "/api/tasks/"+task.ID.String(), token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete task returned %d, want 204", resp.StatusCode)
	}
	if g := getGoal(t, app, token, goal.ID.String()); g.Progress != 50 {
		t.Fatalf("progress after task deletion = %d, want 50", g.Progress)
	}
}

func TestCompleteGoalPinsProgress(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	goal := createGoal(t, app, token, map[string]any{
		"title": "Run a marathon",
		"milestones": []map[string]any{
			{"description": "Run 10k"},
		},
	})

	resp := doJSON(t, app, "PUT", "/api/goals/"+goal.ID.String(), token, map[string]any{
		"isCompleted": true,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("goal update returned %d, want 200", resp.StatusCode)
	}
	var updated models.Goal
	decodeJSON(t, resp, &updated)
	if updated.Progress != 100 || !updated.IsCompleted || updated.CompletedAt == nil {
		t.Fatalf("expected pinned completion, got %#v", updated)
	}
}

func TestConvertMissingMilestoneReturns404(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	goal := createGoal(t, app, token, map[string]any{"title": "Ship v2"})

	resp := doJSON(t, app, "POST",
		"/api/goals/"+goal.ID.String()+"/milestones/"+uuid.New().String()+"/convert",
		token, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("converting missing milestone returned %d, want 404", resp.StatusCode)
	}
}

func TestGoalsAreOwnerScoped(t *testing.T) {
	app := setupTestApp(t)
	aliceToken, _ := registerTestUser(t, app, "alice@example.com")
	bobToken, _ := registerTestUser(t, app, "bob@example.com")

	goal := createGoal(t, app, aliceToken, map[string]any{"title": "Private goal"})

	resp := doJSON(t, app, "GET", "/api/goals/"+goal.ID.String(), bobToken, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("cross-user goal read returned %d, want 404", resp.StatusCode)
	}
}

func TestDeleteTaskListRecomputesGoals(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	goal := createGoal(t, app, token, map[string]any{
		"title": "Ship v2",
		"milestones": []map[string]any{
			{"description": "Write design doc"},
		},
	})

	resp := doJSON(t, app, "POST", "/api/task-lists", token, map[string]any{
		"title": "Release work",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create list returned %d, want 201", resp.StatusCode)
	}
	var list models.TaskList
	decodeJSON(t, resp, &list)

	resp = doJSON(t, app, "POST", "/api/tasks", token, map[string]any{
		"title":        "Blocker",
		"listId":       list.ID.String(),
		"linkedGoalId": goal.ID.String(),
	})
	var task models.Task
	decodeJSON(t, resp, &task)
	resp = doJSON(t, app, "POST", "/api/tasks/"+task.ID.String()+"/toggle", token, nil)
	resp.Body.Close()

	// 0/1 milestones + 1/1 tasks
	if g := getGoal(t, app, token, goal.ID.String()); g.Progress != 50 {
		t.Fatalf("progress before list deletion = %d, want 50", g.Progress)
	}

	resp = doJSON(t, app, "DELETE", "/api/task-lists/"+list.ID.String(), token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete list returned %d, want 204", resp.StatusCode)
	}
	if g := getGoal(t, app, token, goal.ID.String()); g.Progress != 0 {
		t.Fatalf("progress after list deletion = %d, want 0", g.Progress)
	}
}

func TestDefaultTaskListCannotBeDeleted(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	resp := doJSON(t, app, "GET", "/api/task-lists", token, nil)
	var lists []models.TaskList
	decodeJSON(t, resp, &lists)
	if len(lists) != 1 {
		t.Fatalf("expected the default list, got %#v", lists)
	}

	resp = doJSON(t, app, "DELETE", "/api/task-lists/"+lists[0].ID.String(), token, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("default list deletion returned %d, want 400", resp.StatusCode)
	}
}

func TestHabitToggleUpdatesStreak(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	resp := doJSON(t, app, "POST", "/api/habits", token, map[string]any{
		"name": "Daily writing",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create habit returned %d, want 201", resp.StatusCode)
	}
	var habit models.Habit
	decodeJSON(t, resp, &habit)

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	resp = doJSON(t, app, "POST", "/api/habits/"+habit.ID.String()+"/toggle", token, map[string]any{
		"date": yesterday,
	})
	resp.Body.Close()
	resp = doJSON(t, app, "POST", "/api/habits/"+habit.ID.String()+"/toggle", token, map[string]any{
		"date": today,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("habit toggle returned %d, want 200", resp.StatusCode)
	}
	decodeJSON(t, resp, &habit)
	if habit.StreakCount != 2 || len(habit.History) != 2 {
		t.Fatalf("streak=%d history=%v, want streak 2 over 2 days", habit.StreakCount, habit.History)
	}

	// Untoggling today shrinks the streak to yesterday's run
	resp = doJSON(t, app, "POST", "/api/habits/"+habit.ID.String()+"/toggle", token, map[string]any{
		"date": today,
	})
	decodeJSON(t, resp, &habit)
	if habit.StreakCount != 1 || len(habit.History) != 1 {
		t.Fatalf("streak=%d history=%v after untoggle, want streak 1", habit.StreakCount, habit.History)
	}
}

package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/growthflow/growthflow-api/internal/database"
	"github.com/growthflow/growthflow-api/internal/handlers"
	"github.com/growthflow/growthflow-api/internal/models"
)

func promoteToHead(t *testing.T, app *fiber.App, token, department string) {
	t.Helper()
	resp := doJSON(t, app, "PUT", "/api/me", token, map[string]string{
		"role":       models.RoleDepartmentHead,
		"department": department,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("promotion returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func setDepartment(t *testing.T, app *fiber.App, token, department string) {
	t.Helper()
	resp := doJSON(t, app, "PUT", "/api/me", token, map[string]string{
		"department": department,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("department update returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func createKPI(t *testing.T, app *fiber.App, token string, body map[string]any) handlers.KPIView {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/kpis", token, body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create KPI returned %d, want 201", resp.StatusCode)
	}
	var view handlers.KPIView
	decodeJSON(t, resp, &view)
	return view
}

func TestCreateKPIDerivesAchievement(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice@example.com")

	view := createKPI(t, app, token, map[string]any{
		"name":         "Deals closed",
		"targetValue":  200.0,
		"currentValue": 100.0,
	})
	if view.Achievement != 50 || view.Band != "medium" {
		t.Fatalf("achievement=%d band=%q, want 50 medium", view.Achievement, view.Band)
	}
	if view.Type != models.KPITypeNumeric || view.Weight != 1 {
		t.Fatalf("defaults not applied: %#v", view.KPI)
	}
}

func TestDepartmentKPIRequiresHead(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerTestUser(t, app, "bob@example.com")
	setDepartment(t, app, token, "Engineering")

	resp := doJSON(t, app, "POST", "/api/kpis", token, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("employee creating department KPI returned %d, want 403", resp.StatusCode)
	}
}

func TestCreateKPIIgnoresParentLink(t *testing.T) {
	app := setupTestApp(t)

	headToken, _ := registerTestUser(t, app, "head@example.com")
	promoteToHead(t, app, headToken, "Engineering")
	parent := createKPI(t, app, headToken, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})

	peerToken, _ := registerTestUser(t, app, "peer@example.com")
	setDepartment(t, app, peerToken, "Engineering")

	// The hierarchy is only writable through the children endpoint
	sneaky := createKPI(t, app, peerToken, map[string]any{
		"name":        "Self-attached",
		"targetValue": 10.0,
		"parentKpiId": parent.ID.String(),
	})

	var stored models.KPI
	if err := database.DB.First(&stored, "id = ?", sneaky.ID).Error; err != nil {
		t.Fatalf("failed to reload KPI: %v", err)
	}
	if stored.ParentKPIID != nil {
		t.Fatalf("parent link set on create: %v", stored.ParentKPIID)
	}
}

func TestDepartmentKPIVisibility(t *testing.T) {
	app := setupTestApp(t)

	headToken, _ := registerTestUser(t, app, "head@example.com")
	promoteToHead(t, app, headToken, "Engineering")

	deptKPI := createKPI(t, app, headToken, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})
	createKPI(t, app, headToken, map[string]any{
		"name":        "1:1s held",
		"targetValue": 10.0,
	})

	peerToken, _ := registerTestUser(t, app, "peer@example.com")
	setDepartment(t, app, peerToken, "Engineering")

	outsiderToken, _ := registerTestUser(t, app, "outsider@example.com")
	setDepartment(t, app, outsiderToken, "Sales")

	resp := doJSON(t, app, "GET", "/api/kpis", peerToken, nil)
	var peerViews []handlers.KPIView
	decodeJSON(t, resp, &peerViews)
	if len(peerViews) != 1 || peerViews[0].ID != deptKPI.ID {
		t.Fatalf("peer should see only the department KPI, got %#v", peerViews)
	}

	resp = doJSON(t, app, "GET", "/api/kpis", outsiderToken, nil)
	var outsiderViews []handlers.KPIView
	decodeJSON(t, resp, &outsiderViews)
	if len(outsiderViews) != 0 {
		t.Fatalf("outsider should see no KPIs, got %#v", outsiderViews)
	}
}

func TestLinkChildrenReplacesSet(t *testing.T) {
	app := setupTestApp(t)

	headToken, _ := registerTestUser(t, app, "head@example.com")
	promoteToHead(t, app, headToken, "Engineering")

	peerToken, _ := registerTestUser(t, app, "peer@example.com")
	setDepartment(t, app, peerToken, "Engineering")

	parent := createKPI(t, app, headToken, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})
	a := createKPI(t, app, peerToken, map[string]any{"name": "A", "targetValue": 10.0})
	b := createKPI(t, app, peerToken, map[string]any{"name": "B", "targetValue": 10.0})
	c := createKPI(t, app, headToken, map[string]any{"name": "C", "targetValue": 10.0})

	resp := doJSON(t, app, "PUT", "/api/kpis/"+parent.ID.String()+"/children", headToken, map[string]any{
		"childIds": []string{a.ID.String(), b.ID.String()},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first link returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// Relinking replaces the whole child set
	resp = doJSON(t, app, "PUT", "/api/kpis/"+parent.ID.String()+"/children", headToken, map[string]any{
		"childIds": []string{b.ID.String(), c.ID.String()},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("relink returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	parentOf := func(id uuid.UUID) *uuid.UUID {
		var kpi models.KPI
		if err := database.DB.First(&kpi, "id = ?", id).Error; err != nil {
			t.Fatalf("failed to reload KPI: %v", err)
		}
		return kpi.ParentKPIID
	}

	if parentOf(a.ID) != nil {
		t.Fatal("A should have been detached by the relink")
	}
	if p := parentOf(b.ID); p == nil || *p != parent.ID {
		t.Fatalf("B parent = %v, want %s", p, parent.ID)
	}
	if p := parentOf(c.ID); p == nil || *p != parent.ID {
		t.Fatalf("C parent = %v, want %s", p, parent.ID)
	}
}

func TestLinkChildrenForbiddenForEmployee(t *testing.T) {
	app := setupTestApp(t)

	headToken, _ := registerTestUser(t, app, "head@example.com")
	promoteToHead(t, app, headToken, "Engineering")

	parent := createKPI(t, app, headToken, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})

	peerToken, _ := registerTestUser(t, app, "peer@example.com")
	setDepartment(t, app, peerToken, "Engineering")

	resp := doJSON(t, app, "PUT", "/api/kpis/"+parent.ID.String()+"/children", peerToken, map[string]any{
		"childIds": []string{},
	})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("employee linking returned %d, want 403", resp.StatusCode)
	}
}

func TestLinkChildrenRejectsOutsideDepartment(t *testing.T) {
	app := setupTestApp(t)

	headToken, _ := registerTestUser(t, app, "head@example.com")
	promoteToHead(t, app, headToken, "Engineering")

	parent := createKPI(t, app, headToken, map[string]any{
		"name":        "Team velocity",
		"targetValue": 40.0,
		"level":       models.KPILevelDepartment,
	})

	outsiderToken, _ := registerTestUser(t, app, "outsider@example.com")
	setDepartment(t, app, outsiderToken, "Sales")
	stray := createKPI(t, app, outsiderToken, map[string]any{"name": "Stray", "targetValue": 5.0})

	resp := doJSON(t, app, "PUT", "/api/kpis/"+parent.ID.String()+"/children", headToken, map[string]any{
		"childIds": []string{stray.ID.String()},
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("cross-department child returned %d, want 404", resp.StatusCode)
	}
}

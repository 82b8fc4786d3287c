package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffdesk/internal/adapters/http/middleware"
	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
	"staffdesk/internal/config"
	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type memEmployeeRepo struct {
	employees map[uint]*models.Employee
	nextID    uint
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: make(map[uint]*models.Employee), nextID: 1}
}

func (r *memEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	employee.ID = r.nextID
	r.nextID++
	clone := *employee
	r.employees[employee.ID] = &clone
	return nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	if e, ok := r.employees[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memEmployeeRepo) Update(_ context.Context, employee *models.Employee) error {
	clone := *employee
	r.employees[employee.ID] = &clone
	return nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, id uint) error {
	delete(r.employees, id)
	return nil
}

func (r *memEmployeeRepo) List(_ context.Context, filter *repositories.EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error) {
	matched := make([]*models.Employee, 0, len(r.employees))
	for id := uint(1); id < r.nextID; id++ {
		e, ok := r.employees[id]
		if !ok {
			continue
		}
		if filter != nil {
			if filter.Department != "" && e.Department != filter.Department {
				continue
			}
			if filter.Role != "" && e.Role != filter.Role {
				continue
			}
		}
		clone := *e
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memEmployeeRepo) ExistsByEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, e := range r.employees {
		if e.Email == email && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newEmployeeApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: testSecret, AccessTokenMins: 30},
	}

	userRepo := newMemUserRepo()
	_ = userRepo.Create(context.Background(), &models.User{
		Username: "alice", Email: "alice@example.com", Password: "x", IsActive: true,
	})

	employeeRepo := newMemEmployeeRepo()
	employeeService := services.NewEmployeeService(employeeRepo)
	employeeHandler := NewEmployeeHandler(employeeService)

	app := fiber.New()
	employees := app.Group("/api/v1/employees", middleware.AuthMiddleware(cfg, userRepo))
	employees.Post("/", employeeHandler.CreateEmployee)
	employees.Get("/", employeeHandler.ListEmployees)
	employees.Get("/:id", employeeHandler.GetEmployee)
	employees.Put("/:id", employeeHandler.UpdateEmployee)
	employees.Delete("/:id", employeeHandler.DeleteEmployee)

	token, err := jwt.GenerateAccessToken("alice", false, testSecret, 30)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return app, token
}

func employeeRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestEmployeeEndpoints_RequireAuth(t *testing.T) {
	app, _ := newEmployeeApp(t)

	resp := employeeRequest(t, app, http.MethodGet, "/api/v1/employees/", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestEmployeeEndpoints_CRUD(t *testing.T) {
	app, token := newEmployeeApp(t)

	// Create
	resp := employeeRequest(t, app, http.MethodPost, "/api/v1/employees/", token, fiber.Map{
		"name": "Jane Smith", "email": "jane@example.com",
		"department": "Engineering", "role": "Developer",
	})
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d (%v)", resp.StatusCode, body)
	}

	// Empty name
	resp = employeeRequest(t, app, http.MethodPost, "/api/v1/employees/", token, fiber.Map{
		"name": "   ", "email": "blank@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", resp.StatusCode)
	}

	// Duplicate email
	resp = employeeRequest(t, app, http.MethodPost, "/api/v1/employees/", token, fiber.Map{
		"name": "Other", "email": "jane@example.com",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}

	// Get
	resp = employeeRequest(t, app, http.MethodGet, "/api/v1/employees/1", token, nil)
	body = decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 get, got %d", resp.StatusCode)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["name"] != "Jane Smith" {
		t.Fatalf("unexpected employee payload: %v", body)
	}

	// Partial update
	resp = employeeRequest(t, app, http.MethodPut, "/api/v1/employees/1", token, fiber.Map{
		"department": "Platform",
	})
	body = decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 update, got %d (%v)", resp.StatusCode, body)
	}
	data, _ = body["data"].(map[string]interface{})
	if data["department"] != "Platform" || data["name"] != "Jane Smith" {
		t.Fatalf("partial update must only change provided fields: %v", data)
	}

	// Delete
	resp = employeeRequest(t, app, http.MethodDelete, "/api/v1/employees/1", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", resp.StatusCode)
	}

	// Gone
	resp = employeeRequest(t, app, http.MethodGet, "/api/v1/employees/1", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestEmployeeEndpoints_ListFilters(t *testing.T) {
	app, token := newEmployeeApp(t)

	seed := []fiber.Map{
		{"name": "A", "email": "a@example.com", "department": "Engineering", "role": "Developer"},
		{"name": "B", "email": "b@example.com", "department": "Engineering", "role": "Manager"},
		{"name": "C", "email": "c@example.com", "department": "Sales", "role": "Manager"},
	}
	for _, e := range seed {
		resp := employeeRequest(t, app, http.MethodPost, "/api/v1/employees/", token, e)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed create failed: %d", resp.StatusCode)
		}
	}

	resp := employeeRequest(t, app, http.MethodGet, "/api/v1/employees/?department=Engineering&role=Manager", token, nil)
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", resp.StatusCode)
	}
	meta, _ := body["meta"].(map[string]interface{})
	if meta["total"] != float64(1) {
		t.Fatalf("expected 1 match for Engineering+Manager, got %v", meta)
	}
	items, _ := body["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}

	resp = employeeRequest(t, app, http.MethodGet, "/api/v1/employees/?page=2&limit=2", token, nil)
	body = decodeBody(t, resp)
	meta, _ = body["meta"].(map[string]interface{})
	if meta["total"] != float64(3) || meta["page"] != float64(2) {
		t.Fatalf("unexpected pagination meta: %v", meta)
	}
	items, _ = body["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one item on page 2, got %d", len(items))
	}
}

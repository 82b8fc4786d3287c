package handlers

import (
	"errors"
	"strings"

	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/pagination"
	"staffdesk/internal/pkg/response"
	"staffdesk/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee CRUD endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployeeRequest represents create employee request body
type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"max=100"`
	Role       string `json:"role" validate:"max=100"`
}

// UpdateEmployeeRequest represents partial employee update request body
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
}

// CreateEmployee creates a new employee record
// @Summary Create employee
// @Description Create a new employee record
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmployeeRequest true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.CreateEmployeeInput{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
		Role:       strings.TrimSpace(req.Role),
	}

	employee, err := h.employeeService.CreateEmployee(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNameEmpty):
			return response.BadRequest(c, "Name cannot be empty")
		case errors.Is(err, services.ErrEmployeeEmailTaken):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Failed to create employee")
		}
	}

	return response.Created(c, "Employee created successfully", employee)
}

// ListEmployees lists employees with filters and pagination
// @Summary List employees
// @Description List employees, optionally filtered by department and role
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param department query string false "Filter by department"
// @Param role query string false "Filter by role"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	employees, total, err := h.employeeService.ListEmployees(c.Context(), &services.ListEmployeesInput{
		Department: c.Query("department"),
		Role:       c.Query("role"),
		Offset:     params.Offset,
		Limit:      params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return c.JSON(pagination.NewResponse(employees, params, total))
}

// GetEmployee returns a single employee
// @Summary Get employee
// @Description Get an employee by ID
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetEmployee(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", employee)
}

// UpdateEmployee applies a partial update to an employee
// @Summary Update employee
// @Description Update an employee; only provided fields change
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	employee, err := h.employeeService.UpdateEmployee(c.Context(), id, &services.UpdateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmployeeNameEmpty):
			return response.BadRequest(c, "Name cannot be empty")
		case errors.Is(err, services.ErrEmployeeEmailTaken):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Failed to update employee")
		}
	}

	return response.Success(c, "Employee updated successfully", employee)
}

// DeleteEmployee removes an employee record
// @Summary Delete employee
// @Description Delete an employee by ID
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.DeleteEmployee(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to delete employee")
	}

	return response.NoContent(c)
}

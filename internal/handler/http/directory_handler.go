package httphandler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okodanev/deskhub/internal/domain/directory"
	"github.com/okodanev/deskhub/internal/infrastructure/httpserver"
)

// DirectoryService defines the directory operations the handler exposes.
// Declared on the consumer side; the directory store implements it.
type DirectoryService interface {
	directory.Lookup

	UpsertEmployee(e directory.Employee) error
	DeleteEmployee(ctx context.Context, id string)
	UpsertCrew(c directory.Crew) error
	DeleteCrew(ctx context.Context, id string)
}

// EmployeeListResponse represents the employee list.
type EmployeeListResponse struct {
	Employees []directory.Employee `json:"employees"`
	Total     int                  `json:"total"`
}

// CrewListResponse represents the crew list.
type CrewListResponse struct {
	Crews []directory.Crew `json:"crews"`
	Total int              `json:"total"`
}

// DirectoryHandler handles employee and crew directory requests.
type DirectoryHandler struct {
	directory DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(dir DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: dir}
}

// RegisterRoutes registers directory routes with the router.
func (h *DirectoryHandler) RegisterRoutes(r *httpserver.Router) {
	api := r.API()

	api.GET("/employees", h.ListEmployees)
	api.GET("/employees/:id", h.GetEmployee)
	api.PUT("/employees/:id", h.UpsertEmployee)
	api.DELETE("/employees/:id", h.DeleteEmployee)

	api.GET("/crews", h.ListCrews)
	api.GET("/crews/:id", h.GetCrew)
	api.PUT("/crews/:id", h.UpsertCrew)
	api.DELETE("/crews/:id", h.DeleteCrew)
}

// ListEmployees handles GET /api/v1/employees.
func (h *DirectoryHandler) ListEmployees(c echo.Context) error {
	employees, err := h.directory.Employees(c.Request().Context())
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, EmployeeListResponse{
		Employees: employees,
		Total:     len(employees),
	})
}

// GetEmployee handles GET /api/v1/employees/:id.
func (h *DirectoryHandler) GetEmployee(c echo.Context) error {
	e, err := h.directory.Employee(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, e)
}

// UpsertEmployee handles PUT /api/v1/employees/:id.
func (h *DirectoryHandler) UpsertEmployee(c echo.Context) error {
	var e directory.Employee
	if bindErr := c.Bind(&e); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	e.ID = c.Param("id")

	if err := h.directory.UpsertEmployee(e); err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, e)
}

// DeleteEmployee handles DELETE /api/v1/employees/:id.
// Tasks assigned to the employee lose their assignment; the deletion hook
// takes care of that before this returns.
func (h *DirectoryHandler) DeleteEmployee(c echo.Context) error {
	h.directory.DeleteEmployee(c.Request().Context(), c.Param("id"))
	return httpserver.RespondNoContent(c)
}

// ListCrews handles GET /api/v1/crews.
func (h *DirectoryHandler) ListCrews(c echo.Context) error {
	crews, err := h.directory.Crews(c.Request().Context())
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, CrewListResponse{
		Crews: crews,
		Total: len(crews),
	})
}

// GetCrew handles GET /api/v1/crews/:id.
func (h *DirectoryHandler) GetCrew(c echo.Context) error {
	crew, err := h.directory.Crew(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, crew)
}

// UpsertCrew handles PUT /api/v1/crews/:id.
func (h *DirectoryHandler) UpsertCrew(c echo.Context) error {
	var crew directory.Crew
	if bindErr := c.Bind(&crew); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	crew.ID = c.Param("id")

	if err := h.directory.UpsertCrew(crew); err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondOK(c, crew)
}

// DeleteCrew handles DELETE /api/v1/crews/:id.
// Crew-assigned tasks lose the crew link; their member snapshots stay.
func (h *DirectoryHandler) DeleteCrew(c echo.Context) error {
	h.directory.DeleteCrew(c.Request().Context(), c.Param("id"))
	return httpserver.RespondNoContent(c)
}

// Package httphandler contains the HTTP handlers for the dashboard API:
// task scheduling, drag-and-drop resolution, assignment dialogs, and the
// employee directory.
package httphandler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okodanev/deskhub/internal/application/schedule"
	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/task"
	"github.com/okodanev/deskhub/internal/domain/uuid"
	"github.com/okodanev/deskhub/internal/dragdrop"
	"github.com/okodanev/deskhub/internal/infrastructure/httpserver"
)

// QuickAddRequest represents the quick-add bar: just a title, dated on the
// currently selected day.
type QuickAddRequest struct {
	Title string `json:"title"`
}

// SelectDateRequest represents a widget's date selection.
type SelectDateRequest struct {
	WidgetID string `json:"widget_id"`
	Date     string `json:"date"`
}

// MoveTaskRequest represents a programmatic move to another day.
type MoveTaskRequest struct {
	Date string `json:"date"`
}

// DropRequest represents a drag-and-drop gesture landing on a day cell.
type DropRequest struct {
	WidgetID string            `json:"widget_id"`
	Date     string            `json:"date"`
	Carrier  *dragdrop.Carrier `json:"carrier"`
}

// CalendarResponse represents the calendar cells: the selected date plus
// per-day task counts.
type CalendarResponse struct {
	Selected calendar.Day         `json:"selected"`
	Counts   map[calendar.Day]int `json:"counts"`
}

// TaskListResponse represents a list of tasks in API responses.
type TaskListResponse struct {
	Tasks []*task.Task `json:"tasks"`
	Total int          `json:"total"`
}

// ScheduleService defines the scheduling operations the handler exposes.
// Declared on the consumer side; the schedule service implements it.
type ScheduleService interface {
	QuickAdd(ctx context.Context, title string) (*task.Task, error)
	CreateTask(ctx context.Context, cmd schedule.CreateTaskCommand) (*task.Task, error)
	ToggleCompletion(ctx context.Context, id string)
	DeleteTask(ctx context.Context, id string)
	MoveTask(ctx context.Context, id string, day calendar.Day)
	ClearTasks(ctx context.Context)
	Task(id string) (*task.Task, bool)
	TasksOnDate(day any) []*task.Task
	AllTasks() []*task.Task
	CountByDate() map[calendar.Day]int
	SelectDate(ctx context.Context, widgetID uuid.UUID, day calendar.Day) calendar.Day
	SelectedDate() calendar.Day
	DropOnDay(ctx context.Context, widgetID uuid.UUID, carrier *dragdrop.Carrier, target calendar.Day) schedule.DropResult
	SubmitAssignment(ctx context.Context, token uuid.UUID, form schedule.AssignmentForm) (*task.Task, error)
	CancelAssignment(token uuid.UUID)
}

// ScheduleHandler handles scheduling HTTP requests.
type ScheduleHandler struct {
	schedule ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedule ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// RegisterRoutes registers scheduling routes with the router.
func (h *ScheduleHandler) RegisterRoutes(r *httpserver.Router) {
	api := r.API()

	api.POST("/tasks", h.Create)
	api.POST("/tasks/quick", h.QuickAdd)
	api.GET("/tasks", h.List)
	api.GET("/tasks/:id", h.Get)
	api.POST("/tasks/:id/toggle", h.Toggle)
	api.PUT("/tasks/:id/date", h.Move)
	api.DELETE("/tasks/:id", h.Delete)
	api.DELETE("/tasks", h.Clear)

	api.GET("/calendar", h.Calendar)
	api.PUT("/calendar/selected", h.SelectDate)
	api.POST("/calendar/drop", h.Drop)

	api.POST("/assignments/:token", h.SubmitAssignment)
	api.DELETE("/assignments/:token", h.CancelAssignment)
}

// QuickAdd handles POST /api/v1/tasks/quick.
// Creates a minimal task on the currently selected day.
func (h *ScheduleHandler) QuickAdd(c echo.Context) error {
	var req QuickAddRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	created, err := h.schedule.QuickAdd(c.Request().Context(), req.Title)
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondCreated(c, created)
}

// Create handles POST /api/v1/tasks.
// Creates a task from the full form.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var cmd schedule.CreateTaskCommand
	if bindErr := c.Bind(&cmd); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	created, err := h.schedule.CreateTask(c.Request().Context(), cmd)
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondCreated(c, created)
}

// List handles GET /api/v1/tasks.
// Lists all tasks, or the tasks of one day when ?date= is given.
func (h *ScheduleHandler) List(c echo.Context) error {
	var tasks []*task.Task
	if date := c.QueryParam("date"); date != "" {
		tasks = h.schedule.TasksOnDate(date)
	} else {
		tasks = h.schedule.AllTasks()
	}

	return httpserver.RespondOK(c, TaskListResponse{
		Tasks: tasks,
		Total: len(tasks),
	})
}

// Get handles GET /api/v1/tasks/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	t, ok := h.schedule.Task(c.Param("id"))
	if !ok {
		return httpserver.RespondErrorWithCode(
			c, http.StatusNotFound, "NOT_FOUND", "task not found")
	}
	return httpserver.RespondOK(c, t)
}

// Toggle handles POST /api/v1/tasks/:id/toggle.
// Flips the completed flag. A stale ID still answers 204: toggling a task
// that vanished mid-gesture is a quiet no-op, not a failure.
func (h *ScheduleHandler) Toggle(c echo.Context) error {
	h.schedule.ToggleCompletion(c.Request().Context(), c.Param("id"))
	return httpserver.RespondNoContent(c)
}

// Move handles PUT /api/v1/tasks/:id/date.
func (h *ScheduleHandler) Move(c echo.Context) error {
	var req MoveTaskRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	day, err := calendar.ParseDay(req.Date)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_DATE", "invalid date format, expected YYYY-MM-DD")
	}

	h.schedule.MoveTask(c.Request().Context(), c.Param("id"), day)
	return httpserver.RespondNoContent(c)
}

// Delete handles DELETE /api/v1/tasks/:id.
// A stale ID still answers 204 per the store's no-op contract.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	h.schedule.DeleteTask(c.Request().Context(), c.Param("id"))
	return httpserver.RespondNoContent(c)
}

// Clear handles DELETE /api/v1/tasks.
func (h *ScheduleHandler) Clear(c echo.Context) error {
	h.schedule.ClearTasks(c.Request().Context())
	return httpserver.RespondNoContent(c)
}

// Calendar handles GET /api/v1/calendar.
// Returns the selected date and the per-day task counts for the cells.
func (h *ScheduleHandler) Calendar(c echo.Context) error {
	return httpserver.RespondOK(c, CalendarResponse{
		Selected: h.schedule.SelectedDate(),
		Counts:   h.schedule.CountByDate(),
	})
}

// SelectDate handles PUT /api/v1/calendar/selected.
// Records a widget's date selection and settles the shared cursor.
func (h *ScheduleHandler) SelectDate(c echo.Context) error {
	var req SelectDateRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	widgetID, err := uuid.ParseUUID(req.WidgetID)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_WIDGET_ID", "invalid widget ID format")
	}

	day, err := calendar.ParseDay(req.Date)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_DATE", "invalid date format, expected YYYY-MM-DD")
	}

	settled := h.schedule.SelectDate(c.Request().Context(), widgetID, day)
	return httpserver.RespondOK(c, map[string]calendar.Day{"selected": settled})
}

// Drop handles POST /api/v1/calendar/drop.
// Resolves a drag-and-drop gesture on a day cell. The response always
// carries an outcome; malformed payloads resolve to "rejected" with 200,
// never an error status, so the widget's render path stays clean.
func (h *ScheduleHandler) Drop(c echo.Context) error {
	var req DropRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	widgetID, err := uuid.ParseUUID(req.WidgetID)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_WIDGET_ID", "invalid widget ID format")
	}

	day, err := calendar.ParseDay(req.Date)
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_DATE", "invalid date format, expected YYYY-MM-DD")
	}

	result := h.schedule.DropOnDay(c.Request().Context(), widgetID, req.Carrier, day)
	return httpserver.RespondOK(c, result)
}

// SubmitAssignment handles POST /api/v1/assignments/:token.
// Completes a pending assignment dialog.
func (h *ScheduleHandler) SubmitAssignment(c echo.Context) error {
	token, err := uuid.ParseUUID(c.Param("token"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_TOKEN", "invalid assignment token")
	}

	var form schedule.AssignmentForm
	if bindErr := c.Bind(&form); bindErr != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}

	created, err := h.schedule.SubmitAssignment(c.Request().Context(), token, form)
	if err != nil {
		return httpserver.RespondError(c, err)
	}
	return httpserver.RespondCreated(c, created)
}

// CancelAssignment handles DELETE /api/v1/assignments/:token.
// Closing a dialog that is already gone is a no-op.
func (h *ScheduleHandler) CancelAssignment(c echo.Context) error {
	token, err := uuid.ParseUUID(c.Param("token"))
	if err != nil {
		return httpserver.RespondErrorWithCode(
			c, http.StatusBadRequest, "INVALID_TOKEN", "invalid assignment token")
	}

	h.schedule.CancelAssignment(token)
	return httpserver.RespondNoContent(c)
}

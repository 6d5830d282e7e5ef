package httphandler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/application/schedule"
	"github.com/okodanev/deskhub/internal/domain/directory"
	"github.com/okodanev/deskhub/internal/domain/task"
	httphandler "github.com/okodanev/deskhub/internal/handler/http"
	"github.com/okodanev/deskhub/internal/infrastructure/directorystore"
)

func seedDirectory(t *testing.T, dir *directorystore.Store) {
	t.Helper()

	require.NoError(t, dir.UpsertEmployee(directory.Employee{ID: "e1", Name: "Dana K.", Role: "manager"}))
	require.NoError(t, dir.UpsertEmployee(directory.Employee{ID: "e2", Name: "Piotr"}))
	require.NoError(t, dir.UpsertCrew(directory.Crew{ID: "c1", Name: "Cleaning", MemberIDs: []string{"e1", "e2"}}))
}

func TestDirectoryHandler_ListEmployees(t *testing.T) {
	fx := newAPIFixture(t)
	seedDirectory(t, fx.directory)

	rec := fx.request(t, http.MethodGet, "/api/v1/employees", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.EmployeeListResponse
	decodeData(t, rec, &resp)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Dana K.", resp.Employees[0].Name)
}

func TestDirectoryHandler_GetEmployee(t *testing.T) {
	fx := newAPIFixture(t)
	seedDirectory(t, fx.directory)

	rec := fx.request(t, http.MethodGet, "/api/v1/employees/e1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var e directory.Employee
	decodeData(t, rec, &e)
	assert.Equal(t, "manager", e.Role)

	rec = fx.request(t, http.MethodGet, "/api/v1/employees/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirectoryHandler_UpsertEmployee(t *testing.T) {
	fx := newAPIFixture(t)

	rec := fx.request(t, http.MethodPut, "/api/v1/employees/e9", `{"id":"ignored","name":"Mia","avatar":"mia.png"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := fx.directory.Employee(context.Background(), "e9")
	require.NoError(t, err)
	assert.Equal(t, "Mia", stored.Name)

	// The path parameter wins over any ID in the body.
	_, err = fx.directory.Employee(context.Background(), "ignored")
	assert.Error(t, err)
}

func TestDirectoryHandler_UpsertEmployeeMissingName(t *testing.T) {
	fx := newAPIFixture(t)

	rec := fx.request(t, http.MethodPut, "/api/v1/employees/e9", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDirectoryHandler_DeleteEmployeeClearsAssignments(t *testing.T) {
	fx := newAPIFixture(t)
	seedDirectory(t, fx.directory)
	fx.directory.SetDeletionHooks(directorystore.DeletionHooks{
		OnEmployeeDeleted: fx.service.DetachEmployee,
		OnCrewDeleted:     fx.service.DetachCrew,
	})

	created, err := fx.service.CreateTask(context.Background(), schedule.CreateTaskCommand{
		Title:        "Restock kitchen",
		Date:         fx.today,
		AssigneeName: "Dana K.",
	})
	require.NoError(t, err)

	rec := fx.request(t, http.MethodDelete, "/api/v1/employees/e1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	detached, ok := fx.service.Task(created.ID)
	require.True(t, ok)
	assert.Equal(t, task.KindUnassigned, detached.Assigned.Kind())
}

func TestDirectoryHandler_Crews(t *testing.T) {
	fx := newAPIFixture(t)
	seedDirectory(t, fx.directory)

	rec := fx.request(t, http.MethodGet, "/api/v1/crews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.CrewListResponse
	decodeData(t, rec, &resp)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, []string{"e1", "e2"}, resp.Crews[0].MemberIDs)

	rec = fx.request(t, http.MethodPut, "/api/v1/crews/c2", `{"name":"Front desk","member_ids":["e2"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	crew, err := fx.directory.Crew(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Front desk", crew.Name)

	rec = fx.request(t, http.MethodDelete, "/api/v1/crews/c1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = fx.request(t, http.MethodGet, "/api/v1/crews/c1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// TaskHandler serves task reads and the admin-gated create operation.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"    validate:"omitempty"`
	AssignedTo  string `json:"assigned_to"`
	Status      string `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
}

// ListByProject handles GET /v1/projects/:id/tasks — newest first.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  map[string]string
// @Router       /v1/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	tasks, err := h.service.ListProjectTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// List handles GET /v1/tasks — all tasks, newest first.
//
// @Summary      List all tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  map[string]string
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /v1/projects/:id/tasks.
//
// @Summary      Create a task on a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Project id"
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var deadline *time.Time
	if req.Deadline != "" {
		t, err := parseDate(req.Deadline)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "deadline must be a date (YYYY-MM-DD)")
		}
		deadline = &t
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), role, ports.CreateTaskInput{
		ProjectID:   c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		CreatorID:   userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

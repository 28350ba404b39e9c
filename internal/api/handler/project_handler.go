package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// ProjectHandler serves projects already projected for the caller's role:
// redacted fields are absent from the JSON, not zeroed.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name         string `json:"name"          validate:"required"`
	Description  string `json:"description"`
	Deliverables string `json:"deliverables"`
	StartDate    string `json:"start_date"    validate:"required"`
	Deadline     string `json:"deadline"      validate:"required"`
	Status       string `json:"status"        validate:"omitempty,oneof=active ongoing completed"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"  validate:"omitempty,email"`
	ClientPhone  string `json:"client_phone"`
	TotalAmount  string `json:"total_amount"`
	AmountPaid   string `json:"amount_paid"`
	OutsourcedTo string `json:"outsourced_to"`
}

// List handles GET /v1/projects.
//
// @Summary      List projects visible to the caller
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   authz.ProjectView
// @Failure      401  {object}  map[string]string
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListProjects(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project by id
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  authz.ProjectView
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetProject(c.Request().Context(), role, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  authz.ProjectView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "start_date must be a date (YYYY-MM-DD)")
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "deadline must be a date (YYYY-MM-DD)")
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.CreateProject(c.Request().Context(), role, ports.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Deliverables: req.Deliverables,
		StartDate:    startDate,
		Deadline:     deadline,
		Status:       req.Status,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		TotalAmount:  req.TotalAmount,
		AmountPaid:   req.AmountPaid,
		OutsourcedTo: req.OutsourcedTo,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(string(view.Status)).Inc()
	return c.JSON(http.StatusCreated, view)
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// FinanceHandler serves the admin-only finance ledger.
type FinanceHandler struct {
	service ports.FinanceService
}

func NewFinanceHandler(service ports.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

type createFinanceRecordRequest struct {
	Type        string `json:"type"        validate:"required,oneof=income expense"`
	Amount      string `json:"amount"      validate:"required"`
	Description string `json:"description"`
}

// List handles GET /v1/finance.
//
// @Summary      List finance records
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.FinanceRecord
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/finance [get]
func (h *FinanceHandler) List(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListRecords(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Create handles POST /v1/finance.
//
// @Summary      Create a finance record
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFinanceRecordRequest  true  "Record details"
// @Success      201   {object}  domain.FinanceRecord
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/finance [post]
func (h *FinanceHandler) Create(c echo.Context) error {
	var req createFinanceRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	record, err := h.service.CreateRecord(c.Request().Context(), role, ports.CreateFinanceRecordInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

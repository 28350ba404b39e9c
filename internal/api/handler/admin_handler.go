package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// AdminHandler serves privileged user management.
type AdminHandler struct {
	service ports.UserAdminService
}

func NewAdminHandler(service ports.UserAdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

type deleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteUser handles POST /v1/users/delete. The caller's role is re-resolved
// from the role store inside the service; the JWT role claim is not trusted
// here. Response bodies are part of the wire contract, including the 500 for
// a missing target id.
//
// @Summary      Delete a user (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteUserRequest  true  "Target user"
// @Success      200   {object}  deleteUserResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/users/delete [post]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	callerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), callerID, req.UserID); err != nil {
		if err == domain.ErrNotAdmin {
			metrics.DeleteUserDeniedTotal.Inc()
		}
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

// ListMembers handles GET /v1/members — the reduced profile view used to
// populate the task assignee picker.
//
// @Summary      List team members (admin only)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Member
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/members [get]
func (h *AdminHandler) ListMembers(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	members, err := h.service.ListMembers(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// ProfileHandler serves the caller's own profile and avatar upload.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
}

type avatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// Get handles GET /v1/profile.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /v1/profile.
//
// @Summary      Update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{FullName: req.FullName}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "profile updated"})
}

// UploadAvatar handles POST /v1/profile/avatar (multipart form, field
// "avatar").
//
// @Summary      Upload the caller's avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  avatarResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /v1/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "avatar file is required"})
	}
	if fh.Size > maxAvatarBytes {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "avatar exceeds size limit"})
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxAvatarBytes))
	if err != nil {
		return err
	}

	url, err := h.service.UploadAvatar(c.Request().Context(), userID, fh.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarResponse{AvatarURL: url})
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type notificationsRequest struct {
	Enabled *bool  `json:"enabled" example:"true"`
	Time    string `json:"time" example:"18:00"`
}

type profilePictureRequest struct {
	URI *string `json:"uri" example:"file:///photos/me.png"`
}

func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	settings := r.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("/notifications", h.UpdateNotifications)
		settings.PUT("/profile-picture", h.SetProfilePicture)
	}
}

// Get godoc
// @Summary      User settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.Settings
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateNotifications godoc
// @Summary      Enable or disable reminders and set their time
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settings  body      notificationsRequest  true  "Reminder settings"
// @Success      200       {object}  domain.Settings
// @Failure      400       {object}  errorResponse
// @Security     BearerAuth
// @Router       /settings/notifications [put]
func (h *SettingsHandler) UpdateNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req notificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	settings, err := h.svc.UpdateNotifications(c.Request.Context(), services.UpdateNotificationsInput{
		UserID:  userID,
		Enabled: req.Enabled,
		Time:    req.Time,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SetProfilePicture godoc
// @Summary      Set or clear the profile picture
// @Description  A null uri removes the picture.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        picture  body      profilePictureRequest  true  "Picture"
// @Success      200      {object}  domain.Settings
// @Security     BearerAuth
// @Router       /settings/profile-picture [put]
func (h *SettingsHandler) SetProfilePicture(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req profilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	settings, err := h.svc.SetProfilePicture(c.Request.Context(), userID, req.URI)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

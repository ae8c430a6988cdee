package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

type ProgressHandler struct {
	svc *services.StatsService
}

func NewProgressHandler(svc *services.StatsService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	progress := r.Group("/progress")
	{
		progress.GET("/today", h.Today)
		progress.GET("/weekly", h.Weekly)
	}
}

// Today godoc
// @Summary      Completion progress for the current day
// @Tags         progress
// @Produce      json
// @Success      200  {object}  domain.TodayProgress
// @Security     BearerAuth
// @Router       /progress/today [get]
func (h *ProgressHandler) Today(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	progress, err := h.svc.GetTodayProgress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// Weekly godoc
// @Summary      The last seven days, oldest first
// @Tags         progress
// @Produce      json
// @Success      200  {object}  domain.WeeklySummary
// @Security     BearerAuth
// @Router       /progress/weekly [get]
func (h *ProgressHandler) Weekly(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.svc.GetWeeklyStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

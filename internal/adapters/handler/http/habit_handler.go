package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type habitRequest struct {
	Name  string `json:"name" binding:"required" example:"Drink 8 Glasses Water"`
	Emoji string `json:"emoji" example:"💧"`
}

type toggleRequest struct {
	Date string `json:"date" example:"2024-01-15"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/toggle", h.Toggle)
		habits.GET("/:id/streak", h.Streak)
	}
}

// Create godoc
// @Summary      Add a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        habit  body      habitRequest  true  "Habit"
// @Success      201    {object}  domain.Habit
// @Failure      400    {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID: userID,
		Name:   req.Name,
		Emoji:  req.Emoji,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary      List habits in creation order
// @Tags         habits
// @Produce      json
// @Success      200  {array}   domain.Habit
// @Security     BearerAuth
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Update godoc
// @Summary      Rename a habit or change its emoji
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id     path      string        true  "Habit ID"
// @Param        habit  body      habitRequest  true  "Habit"
// @Success      200    {object}  domain.Habit
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:     c.Param("id"),
		UserID: userID,
		Name:   req.Name,
		Emoji:  req.Emoji,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary      Delete a habit
// @Description  Past completions are kept. Deleting an unknown id succeeds.
// @Tags         habits
// @Param        id  path  string  true  "Habit ID"
// @Success      204
// @Security     BearerAuth
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary      Flip a habit's completion for a day
// @Description  Without a date the server's current day is used.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id      path      string         true   "Habit ID"
// @Param        toggle  body      toggleRequest  false  "Day to toggle"
// @Success      200     {object}  services.ToggleResult
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	result, err := h.svc.Toggle(c.Request.Context(), services.ToggleInput{
		HabitID: c.Param("id"),
		UserID:  userID,
		Date:    req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Streak godoc
// @Summary      Current and best streak of a habit
// @Tags         habits
// @Produce      json
// @Param        id  path      string  true  "Habit ID"
// @Success      200 {object}  services.StreakView
// @Failure      404 {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id}/streak [get]
func (h *HabitHandler) Streak(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.svc.Streak(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

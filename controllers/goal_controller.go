package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/middlewares"
	"github.com/progprogect/NutritionBot/models"
	"github.com/progprogect/NutritionBot/services"
)

// GoalController manages daily nutrition targets and their progress view.
type GoalController struct {
	Users    *services.UserService
	Goals    *services.GoalService
	Sessions *services.SessionStore
}

func NewGoalController(users *services.UserService, goals *services.GoalService, sessions *services.SessionStore) *GoalController {
	return &GoalController{Users: users, Goals: goals, Sessions: sessions}
}

// GetGoals returns stored targets plus today's progress.
func (h *GoalController) GetGoals(c *gin.Context) {
	user, err := h.Users.GetOrCreate(middlewares.TgID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Goals.Get(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if goal.Empty() {
		c.JSON(http.StatusOK, gin.H{"empty": true, "reply": "No goals set yet."})
		return
	}

	out := gin.H{"goals": goal}
	progress, err := h.Goals.ProgressToday(user.ID, time.Now())
	if err == nil && len(progress) > 0 {
		out["progress"] = progress
		if hints := services.Suggestions(progress); len(hints) > 0 {
			out["suggestions"] = hints
		}
	}
	c.JSON(http.StatusOK, out)
}

type goalValueRequest struct {
	Value float64 `json:"value" binding:"required"`
}

// SetGoal sets one nutrient's daily target.
func (h *GoalController) SetGoal(c *gin.Context) {
	nutrient, err := models.ParseNutrient(c.Param("nutrient"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown nutrient"})
		return
	}

	user, err := h.Users.GetOrCreate(middlewares.TgID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req goalValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	if err := h.Goals.Set(user.ID, nutrient, req.Value); err != nil {
		if errors.Is(err, services.ErrGoalOutOfRange) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nutrient": nutrient, "value": req.Value})
}

// StartGoalEdit arms the next chat message as the target value.
func (h *GoalController) StartGoalEdit(c *gin.Context) {
	nutrient, err := models.ParseNutrient(c.Param("nutrient"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown nutrient"})
		return
	}

	h.Sessions.StartGoalValue(middlewares.TgID(c), nutrient)
	r := services.GoalRanges[nutrient]
	c.JSON(http.StatusOK, gin.H{
		"reply": "Send the target value (" + r.Unit + ").",
	})
}

// RemoveGoal clears one nutrient's target.
func (h *GoalController) RemoveGoal(c *gin.Context) {
	nutrient, err := models.ParseNutrient(c.Param("nutrient"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown nutrient"})
		return
	}

	user, err := h.Users.GetOrCreate(middlewares.TgID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Goals.Remove(user.ID, nutrient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nutrient": nutrient, "removed": true})
}

// ResetGoals wipes all targets.
func (h *GoalController) ResetGoals(c *gin.Context) {
	user, err := h.Users.GetOrCreate(middlewares.TgID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Goals.Reset(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/middlewares"
	"github.com/progprogect/NutritionBot/models"
	"github.com/progprogect/NutritionBot/services"
)

// DayController serves the day, week, and month report views.
type DayController struct {
	Users   *services.UserService
	Agg     *services.AggregateService
	Trends  *services.TrendService
	Goals   *services.GoalService
	Metrics *services.MetricsService
	Loc     *time.Location
}

func NewDayController(users *services.UserService, agg *services.AggregateService, trends *services.TrendService, goals *services.GoalService, metrics *services.MetricsService, loc *time.Location) *DayController {
	return &DayController{Users: users, Agg: agg, Trends: trends, Goals: goals, Metrics: metrics, Loc: loc}
}

// GetDay returns one day's report. The date query accepts "today",
// "yesterday", their Russian forms, DD.MM.YYYY, and YYYY-MM-DD.
func (h *DayController) GetDay(c *gin.Context) {
	_ = h.Metrics.Record(middlewares.TgID(c), services.MetricCommand, 0)
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	token := c.DefaultQuery("date", "today")
	now := time.Now()
	day, err := services.ResolveDayToken(token, now, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized date, use today, yesterday, DD.MM.YYYY or YYYY-MM-DD"})
		return
	}

	report, err := h.Agg.DayTotals(user.ID, day)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			c.JSON(http.StatusOK, gin.H{"title": day.Title, "empty": true, "reply": "Nothing logged for " + day.Title + "."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := gin.H{
		"title": report.Title,
		"items": report.Items,
		"total": report.Total,
		"slots": report.Slots,
	}

	// Goal progress only makes sense against the current day.
	if day.Start.Equal(services.DayOf(now, h.Loc).Start) {
		progress, err := h.Goals.ProgressToday(user.ID, now)
		if err == nil && len(progress) > 0 {
			out["progress"] = progress
			if hints := services.Suggestions(progress); len(hints) > 0 {
				out["suggestions"] = hints
			}
		}
	}

	c.JSON(http.StatusOK, out)
}

// GetWeek returns the trailing seven-day report with trends.
func (h *DayController) GetWeek(c *gin.Context) {
	_ = h.Metrics.Record(middlewares.TgID(c), services.MetricCommand, 0)
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	report, err := h.Trends.Weekly(user.ID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInsufficientData) {
			c.JSON(http.StatusOK, gin.H{"empty": true, "reply": "Not enough data yet, log meals for a few days first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetMonth returns the calendar month report. Defaults to the current
// month, overridable with year and month query params.
func (h *DayController) GetMonth(c *gin.Context) {
	_ = h.Metrics.Record(middlewares.TgID(c), services.MetricCommand, 0)
	user, ok := h.findUser(c)
	if !ok {
		return
	}

	now := time.Now().In(h.Loc)
	year := now.Year()
	month := now.Month()
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = time.Month(m)
	}

	report, err := h.Trends.Monthly(user.ID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientData) {
			c.JSON(http.StatusOK, gin.H{"empty": true, "reply": "Nothing logged this month yet."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// findUser resolves the chat identity without creating a user. View
// commands from unknown users read as "nothing logged".
func (h *DayController) findUser(c *gin.Context) (*models.User, bool) {
	tgID := middlewares.TgID(c)
	u, err := h.Users.Find(tgID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"empty": true, "reply": "Nothing logged yet."})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return u, true
}

package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/middlewares"
	"github.com/progprogect/NutritionBot/services"
)

// IngestController is the chat-facing surface: every inbound message
// lands here, and free text is routed through any pending session
// (gram edit, goal value, coach intake) before the food pipeline.
type IngestController struct {
	Ingest      *services.IngestService
	Sessions    *services.SessionStore
	Corrections *services.CorrectionService
	Goals       *services.GoalService
	Coach       *services.CoachService
	Users       *services.UserService
	Metrics     *services.MetricsService
}

func NewIngestController(
	ingest *services.IngestService,
	sessions *services.SessionStore,
	corrections *services.CorrectionService,
	goals *services.GoalService,
	coach *services.CoachService,
	users *services.UserService,
	metrics *services.MetricsService,
) *IngestController {
	return &IngestController{
		Ingest:      ingest,
		Sessions:    sessions,
		Corrections: corrections,
		Goals:       goals,
		Coach:       coach,
		Users:       users,
		Metrics:     metrics,
	}
}

var coachQuestions = []string{
	"What is your goal? (lose weight, gain muscle, keep fit)",
	"Any constraints? (allergies, diet, injuries)",
	"Your stats: age, height, weight, activity level.",
	"How can the coach contact you?",
}

type textMessage struct {
	Text string `json:"text" binding:"required"`
}

// PostText handles a free-text message.
func (h *IngestController) PostText(c *gin.Context) {
	tgID := middlewares.TgID(c)
	start := time.Now()

	var msg textMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	if sess, ok := h.Sessions.Peek(tgID); ok {
		h.handleSessionText(c, tgID, sess, text)
		return
	}

	result, err := h.Ingest.LogText(c.Request.Context(), tgID, text, time.Now())
	if err != nil {
		h.ingestError(c, tgID, err)
		return
	}
	_ = h.Metrics.Record(tgID, services.MetricText, time.Since(start))
	c.JSON(http.StatusCreated, result)
}

func (h *IngestController) handleSessionText(c *gin.Context, tgID string, sess *services.Session, text string) {
	switch sess.Kind {
	case services.SessionGramEdit:
		grams, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"reply": "Please send a number of grams, e.g. 150."})
			return
		}
		// The session stays armed until the rescale succeeds, so an
		// invalid value can be retried with the next message.
		item, err := h.Corrections.Rescale(sess.ItemID, grams)
		if err != nil {
			if errors.Is(err, services.ErrInvalidGrams) || errors.Is(err, services.ErrZeroBaseline) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"reply": "Grams must be a positive number, try again."})
				return
			}
			h.Sessions.Clear(tgID)
			h.correctionError(c, err)
			return
		}
		h.Sessions.Clear(tgID)
		c.JSON(http.StatusOK, gin.H{"item": item})

	case services.SessionGoalValue:
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"reply": "Please send a number."})
			return
		}
		user, err := h.Users.GetOrCreate(tgID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := h.Goals.Set(user.ID, sess.Nutrient, value); err != nil {
			if errors.Is(err, services.ErrGoalOutOfRange) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"reply": err.Error() + ", try again"})
				return
			}
			h.Sessions.Clear(tgID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.Sessions.Clear(tgID)
		c.JSON(http.StatusOK, gin.H{"reply": "Goal saved.", "nutrient": sess.Nutrient, "value": value})

	case services.SessionCoach:
		draft, done, ok := h.Sessions.AdvanceCoach(tgID, text)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session state lost"})
			return
		}
		if !done {
			next, _ := h.Sessions.Peek(tgID)
			c.JSON(http.StatusOK, gin.H{"reply": coachQuestions[next.Step]})
			return
		}
		user, err := h.Users.GetOrCreate(tgID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		req, err := h.Coach.Submit(tgID, &user.ID, draft)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"reply": "Request sent to the coach.", "request_id": req.ID})

	default:
		h.Sessions.Clear(tgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown session kind"})
	}
}

type photoMessage struct {
	ImageURL string `json:"image_url" binding:"required"`
	Caption  string `json:"caption"`
}

// PostPhoto handles a meal photo.
func (h *IngestController) PostPhoto(c *gin.Context) {
	tgID := middlewares.TgID(c)
	start := time.Now()

	var msg photoMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	result, err := h.Ingest.LogPhoto(c.Request.Context(), tgID, msg.ImageURL, msg.Caption, time.Now())
	if err != nil {
		h.ingestError(c, tgID, err)
		return
	}
	_ = h.Metrics.Record(tgID, services.MetricPhoto, time.Since(start))
	c.JSON(http.StatusCreated, result)
}

// PostVoice handles a voice note uploaded as multipart form data.
func (h *IngestController) PostVoice(c *gin.Context) {
	tgID := middlewares.TgID(c)
	start := time.Now()

	file, _, err := c.Request.FormFile("voice")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voice file is required"})
		return
	}
	defer file.Close()

	ogg, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read voice file"})
		return
	}

	result, err := h.Ingest.LogVoice(c.Request.Context(), tgID, ogg, time.Now())
	if err != nil {
		h.ingestError(c, tgID, err)
		return
	}
	_ = h.Metrics.Record(tgID, services.MetricVoice, time.Since(start))
	c.JSON(http.StatusCreated, result)
}

// StartCoachIntake opens the questionnaire.
func (h *IngestController) StartCoachIntake(c *gin.Context) {
	tgID := middlewares.TgID(c)
	h.Sessions.StartCoach(tgID)
	c.JSON(http.StatusOK, gin.H{"reply": coachQuestions[0]})
}

// CancelSession aborts whatever dialogue is pending.
func (h *IngestController) CancelSession(c *gin.Context) {
	h.Sessions.Clear(middlewares.TgID(c))
	c.JSON(http.StatusOK, gin.H{"reply": "Cancelled."})
}

func (h *IngestController) ingestError(c *gin.Context, tgID string, err error) {
	_ = h.Metrics.Record(tgID, services.MetricError, 0)
	switch {
	case errors.Is(err, services.ErrExtractTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "recognition took too long, the raw entry was saved"})
	case errors.Is(err, services.ErrNothingRecognized):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not recognize any food, the raw entry was saved"})
	case errors.Is(err, services.ErrExtractMalformed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recognition failed, the raw entry was saved"})
	case errors.Is(err, services.ErrExtractUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "recognition service unavailable, the raw entry was saved"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *IngestController) correctionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, services.ErrInvalidGrams):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "grams must be a positive number"})
	case errors.Is(err, services.ErrZeroBaseline):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "item has no resolved weight to rescale from"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

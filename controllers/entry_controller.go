package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/middlewares"
	"github.com/progprogect/NutritionBot/models"
	"github.com/progprogect/NutritionBot/services"
)

// EntryController manages logged entries: meal slot tagging, moving an
// entry to yesterday, deletion, and item-level gram corrections.
type EntryController struct {
	Users       *services.UserService
	Entries     *services.EntryService
	Corrections *services.CorrectionService
	Sessions    *services.SessionStore
}

func NewEntryController(users *services.UserService, entries *services.EntryService, corrections *services.CorrectionService, sessions *services.SessionStore) *EntryController {
	return &EntryController{Users: users, Entries: entries, Corrections: corrections, Sessions: sessions}
}

func (h *EntryController) user(c *gin.Context) (*models.User, bool) {
	u, err := h.Users.Find(middlewares.TgID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "nothing logged yet"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return u, true
}

func entryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return 0, false
	}
	return uint(id), true
}

// GetEntry returns one entry with its items.
func (h *EntryController) GetEntry(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	entry, err := h.Entries.Get(user.ID, id)
	if err != nil {
		h.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type slotRequest struct {
	Slot string `json:"slot" binding:"required"`
}

// SetSlot tags an entry with a meal slot.
func (h *EntryController) SetSlot(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot is required"})
		return
	}
	slot, err := models.ParseMealSlot(req.Slot)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be one of breakfast, lunch, dinner, snack"})
		return
	}

	if err := h.Entries.SetMealSlot(user.ID, id, slot); err != nil {
		h.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_id": id, "slot": slot})
}

// ShiftYesterday moves an entry one day back. Covers the "that was
// actually yesterday's dinner" flow.
func (h *EntryController) ShiftYesterday(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := h.Entries.ShiftToYesterday(user.ID, id); err != nil {
		h.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_id": id, "shifted": true})
}

// DeleteEntry removes an entry and its items.
func (h *EntryController) DeleteEntry(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := h.Entries.Delete(user.ID, id); err != nil {
		h.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_id": id, "deleted": true})
}

// ListItems lists an entry's items, for picking one to correct.
func (h *EntryController) ListItems(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	items, err := h.Entries.ListItems(user.ID, id)
	if err != nil {
		h.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type gramsRequest struct {
	Grams float64 `json:"grams" binding:"required"`
}

// SetItemGrams rescales one item's macros from a corrected weight.
func (h *EntryController) SetItemGrams(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if !h.ownsItem(c, user.ID, uint(itemID)) {
		return
	}

	var req gramsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grams is required"})
		return
	}

	item, err := h.Corrections.Rescale(uint(itemID), req.Grams)
	if err != nil {
		h.correctionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// StartItemEdit arms the next chat message as the new gram value.
func (h *EntryController) StartItemEdit(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if !h.ownsItem(c, user.ID, uint(itemID)) {
		return
	}

	h.Sessions.StartGramEdit(middlewares.TgID(c), uint(itemID))
	c.JSON(http.StatusOK, gin.H{"reply": "Send the weight in grams."})
}

// ownsItem checks the item belongs to one of the user's entries before
// any correction is armed or applied.
func (h *EntryController) ownsItem(c *gin.Context, userID, itemID uint) bool {
	owned, err := h.Entries.OwnsItem(userID, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return false
	}
	return true
}

func (h *EntryController) entryError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *EntryController) correctionError(c *gin.Context, err error) {
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

package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

var ErrRequestNotFound = errors.New("coach request not found")

const defaultInboxLimit = 10

type CoachService struct {
	db *gorm.DB
}

func NewCoachService(db *gorm.DB) *CoachService {
	return &CoachService{db: db}
}

// Submit persists a completed intake as a new request.
func (s *CoachService) Submit(tgID string, userID *uint, draft CoachDraft) (*models.CoachRequest, error) {
	req := models.CoachRequest{
		UserTgID:    tgID,
		UserID:      userID,
		Goal:        draft.Goal,
		Constraints: draft.Constraints,
		Stats:       draft.Stats,
		Contact:     draft.Contact,
		Status:      models.StatusNew,
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("create coach request: %w", err)
	}
	return &req, nil
}

// Inbox lists requests newest first, optionally filtered by status.
// Limit defaults to 10 and caps at 50.
func (s *CoachService) Inbox(status models.RequestStatus, limit int) ([]models.CoachRequest, error) {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	if limit > 50 {
		limit = 50
	}

	q := s.db.Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.CoachRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *CoachService) Get(id uint) (*models.CoachRequest, error) {
	var req models.CoachRequest
	err := s.db.First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// SetStatus moves a request through the review workflow.
func (s *CoachService) SetStatus(id uint, status models.RequestStatus) (*models.CoachRequest, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	req.Status = status
	if err := s.db.Save(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

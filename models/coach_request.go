package models

import (
	"fmt"

	"gorm.io/gorm"
)

// RequestStatus is the lifecycle of a coaching request:
// new -> in_progress -> done | rejected.
type RequestStatus string

const (
	StatusNew        RequestStatus = "new"
	StatusInProgress RequestStatus = "in_progress"
	StatusDone       RequestStatus = "done"
	StatusRejected   RequestStatus = "rejected"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusNew, StatusInProgress, StatusDone, StatusRejected:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// CoachRequest is a personal-plan questionnaire submitted to the coach.
type CoachRequest struct {
	gorm.Model
	UserTgID string `gorm:"type:varchar(64);index;not null"`
	UserID   *uint

	Goal        string
	Constraints string
	Stats       string
	Contact     string

	Status RequestStatus `gorm:"type:varchar(16);index;default:new"`
}

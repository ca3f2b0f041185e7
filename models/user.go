package models

import (
	"gorm.io/gorm"
)

// User is created lazily on a user's first message and never deleted.
type User struct {
	gorm.Model
	TgID string `gorm:"type:varchar(64);uniqueIndex;not null"`
}

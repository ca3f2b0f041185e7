package models

import "time"

// MetricsEvent is one handled request, recorded for operator stats
// (DAU, activity counts, latency percentiles).
type MetricsEvent struct {
	ID        uint   `gorm:"primarykey"`
	UserTgID  string `gorm:"type:varchar(64);index"`
	Kind      string `gorm:"type:varchar(16);index"`
	LatencyMs int64
	CreatedAt time.Time `gorm:"index"`
}

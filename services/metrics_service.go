package services

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

// Event kinds recorded by the usage metrics pipeline.
const (
	MetricText    = "text"
	MetricVoice   = "voice"
	MetricPhoto   = "photo"
	MetricCommand = "command"
	MetricError   = "error"
)

type MetricsService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewMetricsService(db *gorm.DB, loc *time.Location) *MetricsService {
	return &MetricsService{db: db, loc: loc}
}

// Record appends one usage event. Failures are returned but callers
// treat them as non-fatal, a lost metric never blocks a reply.
func (s *MetricsService) Record(tgID, kind string, latency time.Duration) error {
	event := models.MetricsEvent{
		UserTgID:  tgID,
		Kind:      kind,
		LatencyMs: latency.Milliseconds(),
	}
	return s.db.Create(&event).Error
}

// DailyStats summarizes one day of usage.
type DailyStats struct {
	Day          string         `json:"day"`
	ActiveUsers  int            `json:"active_users"`
	Events       int            `json:"events"`
	CountsByKind map[string]int `json:"counts_by_kind"`
	AvgLatencyMs int64          `json:"avg_latency_ms"`
	P95LatencyMs int64          `json:"p95_latency_ms"`
}

// Daily computes distinct users, per-kind counts, and latency stats for
// the day containing t. Percentile math is done here rather than in SQL
// so the same query runs on postgres and sqlite.
func (s *MetricsService) Daily(t time.Time) (*DailyStats, error) {
	start := dayStart(t, s.loc)
	end := start.AddDate(0, 0, 1)

	var events []models.MetricsEvent
	err := s.db.
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		Day:          start.Format("2006-01-02"),
		Events:       len(events),
		CountsByKind: map[string]int{},
	}

	users := map[string]struct{}{}
	var latencies []int64
	var totalLatency int64
	for _, e := range events {
		users[e.UserTgID] = struct{}{}
		stats.CountsByKind[e.Kind]++
		if e.LatencyMs > 0 {
			latencies = append(latencies, e.LatencyMs)
			totalLatency += e.LatencyMs
		}
	}
	stats.ActiveUsers = len(users)

	if len(latencies) > 0 {
		stats.AvgLatencyMs = totalLatency / int64(len(latencies))
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		idx := int(math.Ceil(0.95*float64(len(latencies)))) - 1
		if idx < 0 {
			idx = 0
		}
		stats.P95LatencyMs = latencies[idx]
	}
	return stats, nil
}

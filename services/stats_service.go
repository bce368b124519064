package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// StatsService records endpoint hits and answers aggregated view queries.
// It runs against the stats schema, separate from the main platform data.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a StatsService.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// RecordHit appends one hit row. Hits are never updated or deleted.
func (s *StatsService) RecordHit(hit dto.EndpointHit) error {
	ts := time.Now()
	if hit.Timestamp != nil {
		ts = hit.Timestamp.Time()
	}

	row := models.Hit{
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: ts,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	utils.Sugar.Debugf("recorded hit app=%s uri=%s ip=%s", row.App, row.URI, row.IP)
	return nil
}

// GetStats aggregates hits in [start, end] grouped by app and uri. With
// unique=true each distinct ip counts once per group. An empty uris slice
// means no uri filter. An inverted range is not an error, it just matches
// nothing. Rows come back ordered by hits descending, ties broken by uri.
func (s *StatsService) GetStats(start, end time.Time, uris []string, unique bool) ([]dto.ViewStats, error) {
	counter := "COUNT(*)"
	if unique {
		counter = "COUNT(DISTINCT ip)"
	}

	q := s.db.Model(&models.Hit{}).
		Select("app, uri, "+counter+" AS hits").
		Where("timestamp BETWEEN ? AND ?", start, end)
	if len(uris) > 0 {
		q = q.Where("uri IN ?", uris)
	}

	var stats []dto.ViewStats
	if err := q.Group("app, uri").Order("hits DESC, uri ASC").Scan(&stats).Error; err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []dto.ViewStats{}
	}
	return stats, nil
}

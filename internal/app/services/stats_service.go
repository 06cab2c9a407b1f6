package services

import (
	"context"

	"github.com/willy903/backintern/internal/app/models"
)

// DepartmentStatsReader is the read-side surface for per-department rollups.
type DepartmentStatsReader interface {
	GetDepartmentStats(ctx context.Context) ([]*models.DepartmentStats, error)
}

// StatsService exposes the aggregation views.
type StatsService interface {
	DepartmentStats(ctx context.Context) ([]*models.DepartmentStats, error)
}

type statsServiceImpl struct {
	reader DepartmentStatsReader
}

// NewStatsService creates a new stats service instance
func NewStatsService(reader DepartmentStatsReader) StatsService {
	return &statsServiceImpl{
		reader: reader,
	}
}

func (s *statsServiceImpl) DepartmentStats(ctx context.Context) ([]*models.DepartmentStats, error) {
	return s.reader.GetDepartmentStats(ctx)
}

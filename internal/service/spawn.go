package service

import (
	"context"
	"time"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

// Placeholder values until spawn timing is computed server side; clients
// derive the live schedule themselves.
const (
	defaultColorSet   = "blue"
	defaultTimeToNext = 0
)

type SpawnService struct {
	now func() time.Time
}

func NewSpawnService() *SpawnService {
	return &SpawnService{now: time.Now}
}

func (s *SpawnService) PredictSpawns(ctx context.Context) models.SpawnPrediction {
	return models.SpawnPrediction{
		CurrentSpawns:   []models.SpawnEntry{},
		NextSpawns:      []models.SpawnEntry{},
		TimeToNext:      defaultTimeToNext,
		CurrentColorSet: defaultColorSet,
		ServerTime:      s.now().UTC(),
	}
}

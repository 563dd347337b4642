package service

import (
	"context"
	"time"

	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/repository"
)

// StatusChecks creates and lists client heartbeat records.
type StatusChecks interface {
	CreateStatusCheck(ctx context.Context, in models.StatusCheckCreate) (models.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error)
}

// SpawnPredictor reports current and upcoming relic spawns.
type SpawnPredictor interface {
	PredictSpawns(ctx context.Context) models.SpawnPrediction
}

// Service aggregates all sub-services.
type Service struct {
	StatusChecks
	SpawnPredictor
}

// Options tunes the services built by NewService.
type Options struct {
	StoreTimeout time.Duration
	Log          *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		StatusChecks:   NewStatusCheckService(repos.StatusChecks, opts.StoreTimeout, opts.Log),
		SpawnPredictor: NewSpawnService(),
	}
}

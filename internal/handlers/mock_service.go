package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strixcodecipher/relicsneb/internal/config"
	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/service"
)

// ---- Service Mocks ----

type mockStatusChecks struct {
	created   models.StatusCheck
	createErr error
	list      []models.StatusCheck
	listErr   error

	lastInput   models.StatusCheckCreate
	createCalls int
	listCalls   int
}

func (m *mockStatusChecks) CreateStatusCheck(ctx context.Context, in models.StatusCheckCreate) (models.StatusCheck, error) {
	m.createCalls++
	m.lastInput = in
	return m.created, m.createErr
}

func (m *mockStatusChecks) ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	m.listCalls++
	return m.list, m.listErr
}

type mockSpawns struct {
	prediction models.SpawnPrediction
	calls      int
}

func (m *mockSpawns) PredictSpawns(ctx context.Context) models.SpawnPrediction {
	m.calls++
	p := m.prediction
	if p.ServerTime.IsZero() {
		p.ServerTime = time.Now().UTC()
	}
	return p
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithCORS(s, config.CORSConfig{Origins: []string{"*"}})
}

func newTestRouterWithCORS(s *service.Service, cors config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, cors)
	return h.InitRoutes()
}

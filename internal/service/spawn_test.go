package service

import (
	"context"
	"testing"
	"time"
)

func TestSpawnService_PredictSpawns(t *testing.T) {
	t.Parallel()

	start := time.Now()
	got := NewSpawnService().PredictSpawns(context.Background())

	if got.TimeToNext != 0 {
		t.Fatalf("time_to_next = %d", got.TimeToNext)
	}
	if got.CurrentSpawns == nil || len(got.CurrentSpawns) != 0 {
		t.Fatalf("current_spawns must be an empty list, got %#v", got.CurrentSpawns)
	}
	if got.NextSpawns == nil || len(got.NextSpawns) != 0 {
		t.Fatalf("next_spawns must be an empty list, got %#v", got.NextSpawns)
	}
	if got.CurrentColorSet != "blue" {
		t.Fatalf("current_color_set = %q", got.CurrentColorSet)
	}
	if got.ServerTime.IsZero() || got.ServerTime.Before(start.Truncate(time.Second)) {
		t.Fatalf("server_time %v older than request start %v", got.ServerTime, start)
	}
}

func TestNewService_Wires(t *testing.T) {
	t.Parallel()

	s := NewService(repositoryForTest(), Options{StoreTimeout: time.Second})
	if s.StatusChecks == nil || s.SpawnPredictor == nil {
		t.Fatalf("service not fully wired: %+v", s)
	}
}

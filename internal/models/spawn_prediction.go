package models

import "time"

// SpawnEntry is an open-ended spawn payload. No schema is fixed yet.
type SpawnEntry map[string]any

// SpawnPrediction describes current and upcoming relic spawns.
type SpawnPrediction struct {
	CurrentSpawns   []SpawnEntry `json:"current_spawns"`
	NextSpawns      []SpawnEntry `json:"next_spawns"`
	TimeToNext      int          `json:"time_to_next"` // seconds
	CurrentColorSet string       `json:"current_color_set"`
	ServerTime      time.Time    `json:"server_time"`
}

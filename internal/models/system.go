package models

import "time"

// APIInfo is returned by the API root.
type APIInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Health is the health check payload.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

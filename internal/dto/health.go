package dto

import "time"

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK        bool      `json:"ok"`
	Uptime    float64   `json:"uptime"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse reports whether the database answers
type ReadinessResponse struct {
	OK        bool      `json:"ok"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

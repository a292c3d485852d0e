package models

import "time"

// ServiceInfo is returned by GET /
type ServiceInfo struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// Health is returned by GET /health
type Health struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

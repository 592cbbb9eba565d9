// Package metrics holds in-memory request counters for the catalog server.
package metrics

import "time"

// Request kinds recorded by the HTTP layer.
const (
	KindBooks  = "books"
	KindCover  = "cover"
	KindExport = "export"
	KindWSPage = "ws_page"
)

// Request outcomes.
const (
	StatusSuccess     = "success"
	StatusClientError = "client_error"
	StatusError       = "error"
)

// System health values.
const (
	SystemHealthRunning  = "running"
	SystemHealthDegraded = "degraded"
)

// RequestRecord describes one served request.
type RequestRecord struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`

	// Seed and Locale are empty for requests that carry none.
	Seed   string `json:"seed,omitempty"`
	Locale string `json:"locale,omitempty"`

	// Books is the number of records generated by the request.
	Books int `json:"books"`

	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	ErrorMsg  string        `json:"error_msg,omitempty"`
}

// SystemStatus represents the overall system health and status.
type SystemStatus struct {
	Health    string        `json:"health"`
	Version   string        `json:"version"`
	Uptime    time.Duration `json:"uptime"`
	LastCheck time.Time     `json:"last_check"`
}

// RequestMetrics aggregates every recorded request.
type RequestMetrics struct {
	TotalRequests  int64                   `json:"total_requests"`
	TotalSuccess   int64                   `json:"total_success"`
	TotalErrors    int64                   `json:"total_errors"`
	BooksGenerated int64                   `json:"books_generated"`
	ByKind         map[string]*KindMetrics `json:"by_kind"`
}

// KindMetrics aggregates requests of one kind.
type KindMetrics struct {
	Count        int64         `json:"count"`
	ClientErrors int64         `json:"client_errors"`
	ServerErrors int64         `json:"server_errors"`
	SuccessRate  float64       `json:"success_rate"`
	AvgDuration  time.Duration `json:"avg_duration"`
}

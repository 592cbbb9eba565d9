package metrics

// Collector is what the HTTP layer records into. Implementations must be
// safe for concurrent use.
type Collector interface {
	// RecordRequest logs a completed request.
	RecordRequest(rec RequestRecord)

	// GetRequestMetrics returns aggregated counters.
	GetRequestMetrics() RequestMetrics

	// GetRecentRequests returns up to limit records, oldest first.
	GetRecentRequests(limit int) []RequestRecord

	// GetSystemStatus returns health, version and uptime.
	GetSystemStatus() SystemStatus
}

package metrics

import (
	"sync"
	"time"
)

// Store is the in-memory Collector. It keeps totals, per-kind statistics
// and a fixed-size ring of recent requests.
//
// Usage:
//
//	store := NewStore(DefaultStoreConfig(), time.Now())
//	store.RecordRequest(rec)
//	m := store.GetRequestMetrics()
type Store struct {
	mu sync.RWMutex

	history []RequestRecord
	histCap int
	head    int
	size    int

	totalRequests  int64
	totalSuccess   int64
	totalErrors    int64
	booksGenerated int64
	byKind         map[string]*kindStats

	startTime time.Time
	version   string
}

type kindStats struct {
	count         int64
	successCount  int64
	clientErrors  int64
	serverErrors  int64
	totalDuration time.Duration
}

// StoreConfig configures the Store.
type StoreConfig struct {
	// HistoryCapacity is the max number of requests to retain.
	HistoryCapacity int
	Version         string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryCapacity: 100,
		Version:         "dev",
	}
}

// NewStore creates a Store. startTime is used to calculate uptime.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	capacity := config.HistoryCapacity
	if capacity < 1 {
		capacity = 100
	}

	return &Store{
		history:   make([]RequestRecord, capacity),
		histCap:   capacity,
		byKind:    make(map[string]*kindStats),
		startTime: startTime,
		version:   config.Version,
	}
}

// RecordRequest logs a completed request.
func (s *Store) RecordRequest(rec RequestRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[s.head] = rec
	s.head = (s.head + 1) % s.histCap
	if s.size < s.histCap {
		s.size++
	}

	s.totalRequests++
	s.booksGenerated += int64(rec.Books)

	stats, ok := s.byKind[rec.Kind]
	if !ok {
		stats = &kindStats{}
		s.byKind[rec.Kind] = stats
	}
	stats.count++
	stats.totalDuration += rec.Duration

	switch rec.Status {
	case StatusSuccess:
		s.totalSuccess++
		stats.successCount++
	case StatusClientError:
		s.totalErrors++
		stats.clientErrors++
	default:
		s.totalErrors++
		stats.serverErrors++
	}
}

// GetRequestMetrics returns aggregated counters.
func (s *Store) GetRequestMetrics() RequestMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := RequestMetrics{
		TotalRequests:  s.totalRequests,
		TotalSuccess:   s.totalSuccess,
		TotalErrors:    s.totalErrors,
		BooksGenerated: s.booksGenerated,
		ByKind:         make(map[string]*KindMetrics, len(s.byKind)),
	}

	for kind, stats := range s.byKind {
		km := &KindMetrics{
			Count:        stats.count,
			ClientErrors: stats.clientErrors,
			ServerErrors: stats.serverErrors,
		}
		if stats.count > 0 {
			km.SuccessRate = float64(stats.successCount) / float64(stats.count) * 100
			km.AvgDuration = stats.totalDuration / time.Duration(stats.count)
		}
		m.ByKind[kind] = km
	}

	return m
}

// GetRecentRequests returns up to limit of the most recent records, oldest first.
func (s *Store) GetRecentRequests(limit int) []RequestRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.size == 0 {
		return []RequestRecord{}
	}
	if limit > s.size {
		limit = s.size
	}

	result := make([]RequestRecord, limit)
	for i := 0; i < limit; i++ {
		idx := (s.head - limit + i + s.histCap) % s.histCap
		result[i] = s.history[idx]
	}
	return result
}

// GetSystemStatus reports degraded health when more than half of at least
// ten recorded requests failed server-side.
func (s *Store) GetSystemStatus() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var serverErrors int64
	for _, stats := range s.byKind {
		serverErrors += stats.serverErrors
	}

	health := SystemHealthRunning
	if s.totalRequests >= 10 && serverErrors*2 > s.totalRequests {
		health = SystemHealthDegraded
	}

	return SystemStatus{
		Health:    health,
		Version:   s.version,
		Uptime:    time.Since(s.startTime),
		LastCheck: time.Now(),
	}
}

var _ Collector = (*Store)(nil)

package store

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/heysubinoy/kvs/pkg/kv"
)

// Metrics holds timing statistics for store operations.
// Uses atomic operations for thread-safe updates without locks.
type Metrics struct {
	GetCount     atomic.Uint64
	SetCount     atomic.Uint64
	DeleteCount  atomic.Uint64
	EntriesCount atomic.Uint64

	// Cumulative latencies in nanoseconds
	GetLatencyNs     atomic.Uint64
	SetLatencyNs     atomic.Uint64
	DeleteLatencyNs  atomic.Uint64
	EntriesLatencyNs atomic.Uint64
}

// InstrumentedStore wraps any kv.Store implementation with timing metrics.
// The command layer wraps the loaded store with it and logs the snapshot
// once the command has run.
type InstrumentedStore struct {
	store   kv.Store
	metrics *Metrics
}

// Compile-time check to ensure InstrumentedStore implements kv.Store.
var _ kv.Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps a store with instrumentation.
func NewInstrumentedStore(store kv.Store) *InstrumentedStore {
	return &InstrumentedStore{
		store:   store,
		metrics: &Metrics{},
	}
}

// Unwrap returns the wrapped store.
func (s *InstrumentedStore) Unwrap() kv.Store {
	return s.store
}

// Get delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Get(key string) (string, bool) {
	start := time.Now()
	value, found := s.store.Get(key)
	record(&s.metrics.GetCount, &s.metrics.GetLatencyNs, start)
	return value, found
}

// Set delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Set(key, value string) error {
	start := time.Now()
	err := s.store.Set(key, value)
	record(&s.metrics.SetCount, &s.metrics.SetLatencyNs, start)
	return err
}

// Delete delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Delete(key string) error {
	start := time.Now()
	err := s.store.Delete(key)
	record(&s.metrics.DeleteCount, &s.metrics.DeleteLatencyNs, start)
	return err
}

// Entries delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Entries() map[string]string {
	start := time.Now()
	entries := s.store.Entries()
	record(&s.metrics.EntriesCount, &s.metrics.EntriesLatencyNs, start)
	return entries
}

// Len is not instrumented.
func (s *InstrumentedStore) Len() int {
	return s.store.Len()
}

func record(count, latency *atomic.Uint64, start time.Time) {
	count.Add(1)
	latency.Add(uint64(time.Since(start).Nanoseconds()))
}

// Metrics returns a snapshot of current metrics.
func (s *InstrumentedStore) Metrics() MetricsSnapshot {
	getCount := s.metrics.GetCount.Load()
	setCount := s.metrics.SetCount.Load()
	deleteCount := s.metrics.DeleteCount.Load()
	entriesCount := s.metrics.EntriesCount.Load()

	return MetricsSnapshot{
		GetCount:          getCount,
		SetCount:          setCount,
		DeleteCount:       deleteCount,
		EntriesCount:      entriesCount,
		GetAvgLatency:     avgLatency(s.metrics.GetLatencyNs.Load(), getCount),
		SetAvgLatency:     avgLatency(s.metrics.SetLatencyNs.Load(), setCount),
		DeleteAvgLatency:  avgLatency(s.metrics.DeleteLatencyNs.Load(), deleteCount),
		EntriesAvgLatency: avgLatency(s.metrics.EntriesLatencyNs.Load(), entriesCount),
	}
}

// ResetMetrics clears all metrics counters.
func (s *InstrumentedStore) ResetMetrics() {
	s.metrics.GetCount.Store(0)
	s.metrics.SetCount.Store(0)
	s.metrics.DeleteCount.Store(0)
	s.metrics.EntriesCount.Store(0)
	s.metrics.GetLatencyNs.Store(0)
	s.metrics.SetLatencyNs.Store(0)
	s.metrics.DeleteLatencyNs.Store(0)
	s.metrics.EntriesLatencyNs.Store(0)
}

func avgLatency(totalNs, count uint64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(totalNs / count)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	GetCount          uint64
	SetCount          uint64
	DeleteCount       uint64
	EntriesCount      uint64
	GetAvgLatency     time.Duration
	SetAvgLatency     time.Duration
	DeleteAvgLatency  time.Duration
	EntriesAvgLatency time.Duration
}

// MarshalLogObject lets the snapshot be logged with zap.Object.
// Operations that never ran are omitted.
func (m MetricsSnapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	addOp := func(name string, count uint64, avg time.Duration) {
		if count == 0 {
			return
		}
		enc.AddUint64(name+"_count", count)
		enc.AddDuration(name+"_avg_latency", avg)
	}
	addOp("get", m.GetCount, m.GetAvgLatency)
	addOp("set", m.SetCount, m.SetAvgLatency)
	addOp("delete", m.DeleteCount, m.DeleteAvgLatency)
	addOp("entries", m.EntriesCount, m.EntriesAvgLatency)
	return nil
}

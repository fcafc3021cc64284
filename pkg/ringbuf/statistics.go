package ringbuf

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer activity. Counters are atomic so that a monitoring
// goroutine may read them while the owner keeps using the buffer.
type Statistics struct {
	inserts    atomic.Int64
	removes    atomic.Int64
	evictions  atomic.Int64
	emptyReads atomic.Int64
	peeks      atomic.Int64

	currentLen atomic.Int64
	maxLen     atomic.Int64
	capacity   int64

	mu        sync.RWMutex
	startTime time.Time
}

// NewStatistics creates a statistics tracker for a buffer of the given capacity.
func NewStatistics(capacity int) *Statistics {
	return &Statistics{
		capacity:  int64(capacity),
		startTime: time.Now(),
	}
}

func (s *Statistics) recordInsert(evicted bool) {
	s.inserts.Add(1)
	if evicted {
		s.evictions.Add(1)
	}
}

func (s *Statistics) recordRemove() {
	s.removes.Add(1)
}

func (s *Statistics) recordEmptyRead() {
	s.emptyReads.Add(1)
}

func (s *Statistics) recordPeek() {
	s.peeks.Add(1)
}

func (s *Statistics) updateLen(n int64) {
	s.currentLen.Store(n)
	for {
		maxLen := s.maxLen.Load()
		if n <= maxLen || s.maxLen.CompareAndSwap(maxLen, n) {
			return
		}
	}
}

// Inserts returns the total number of Insert calls.
func (s *Statistics) Inserts() int64 {
	return s.inserts.Load()
}

// Removes returns the number of successful Remove calls.
func (s *Statistics) Removes() int64 {
	return s.removes.Load()
}

// Evictions returns the number of inserts that displaced the oldest element.
func (s *Statistics) Evictions() int64 {
	return s.evictions.Load()
}

// EmptyReads returns the number of Remove calls on an empty buffer.
func (s *Statistics) EmptyReads() int64 {
	return s.emptyReads.Load()
}

// Peeks returns the number of successful Peek calls.
func (s *Statistics) Peeks() int64 {
	return s.peeks.Load()
}

// CurrentLen returns the buffer length after the last mutation.
func (s *Statistics) CurrentLen() int64 {
	return s.currentLen.Load()
}

// MaxLen returns the highest length observed.
func (s *Statistics) MaxLen() int64 {
	return s.maxLen.Load()
}

// EvictionRate returns the fraction of inserts that evicted (0.0 to 1.0).
func (s *Statistics) EvictionRate() float64 {
	inserts := s.Inserts()
	if inserts == 0 {
		return 0.0
	}
	return float64(s.Evictions()) / float64(inserts)
}

// Capacity returns the capacity of the tracked buffer.
func (s *Statistics) Capacity() int64 {
	return s.capacity
}

// Utilization returns CurrentLen as a fraction of capacity (0.0 to 1.0).
func (s *Statistics) Utilization() float64 {
	if s.capacity <= 0 {
		return 0.0
	}
	return float64(s.CurrentLen()) / float64(s.capacity)
}

// Uptime returns the time since creation or the last Reset.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Throughput returns the average number of inserts per second.
func (s *Statistics) Throughput() float64 {
	elapsed := s.Uptime()
	if elapsed <= 0 {
		return 0.0
	}
	return float64(s.Inserts()) / elapsed.Seconds()
}

// Reset zeroes every counter. The current length is kept since it reflects
// the buffer, not its history.
func (s *Statistics) Reset() {
	s.inserts.Store(0)
	s.removes.Store(0)
	s.evictions.Store(0)
	s.emptyReads.Store(0)
	s.peeks.Store(0)
	s.maxLen.Store(s.currentLen.Load())

	s.mu.Lock()
	s.startTime = time.Now()
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of Statistics.
type StatsSummary struct {
	Inserts      int64         `json:"inserts"`
	Removes      int64         `json:"removes"`
	Evictions    int64         `json:"evictions"`
	EmptyReads   int64         `json:"empty_reads"`
	Peeks        int64         `json:"peeks"`
	CurrentLen   int64         `json:"current_len"`
	MaxLen       int64         `json:"max_len"`
	Capacity     int64         `json:"capacity"`
	Utilization  float64       `json:"utilization"`
	EvictionRate float64       `json:"eviction_rate"`
	Throughput   float64       `json:"throughput"`
	Uptime       time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Inserts:      s.Inserts(),
		Removes:      s.Removes(),
		Evictions:    s.Evictions(),
		EmptyReads:   s.EmptyReads(),
		Peeks:        s.Peeks(),
		CurrentLen:   s.CurrentLen(),
		MaxLen:       s.MaxLen(),
		Capacity:     s.Capacity(),
		Utilization:  s.Utilization(),
		EvictionRate: s.EvictionRate(),
		Throughput:   s.Throughput(),
		Uptime:       s.Uptime(),
	}
}

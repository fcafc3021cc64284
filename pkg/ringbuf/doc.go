// Package ringbuf provides a fixed-capacity circular buffer that overwrites
// its oldest element when full.
//
// # Overview
//
// A RingBuffer stores up to Cap() elements of any type in a slice allocated
// once by New. Insert and Remove are O(1) and never allocate, which makes the
// buffer suitable for sample buffers and bounded pipelines that must not grow.
//
//	rb, err := ringbuf.New[uint32](10)
//	if err != nil {
//		return err // errors.ErrInvalidCapacity when capacity <= 0
//	}
//
//	rb.Insert(1)
//	v, ok := rb.Remove() // 1, true
//
// # Overwrite Policy
//
// Inserting into a full buffer evicts the oldest element and hands it back
// to the caller, so nothing is silently lost:
//
//	if old, evicted := rb.Insert(v); evicted {
//		release(old)
//	}
//
// Callers that prefer to reject new elements check IsFull first.
//
// # Empty Reads
//
// Remove on an empty buffer returns the zero value and false. This is the
// normal "nothing available" signal for polling consumers, not an error.
//
// # Full and Empty
//
// The read and write positions coincide both when the buffer is empty and
// when it is full. The element count alone decides which, and IsFull and
// IsEmpty look at nothing else.
//
// # Slots
//
// Each slot records whether it holds a live element. Slots are cleared as
// soon as their element leaves the buffer, so removed values are not kept
// reachable and never read twice. Reset releases the remaining elements,
// oldest first, through the drop callback set with WithDropCallback.
//
// # Observability
//
// Statistics are always collected and available via Stats(). Prometheus
// metrics are enabled with WithMetrics and a metric.MetricsRegistry. Logging
// is opt-in through WithLogger and only emits debug records.
//
// # Concurrency
//
// RingBuffer has a single owner and no internal locking. NewSynchronized
// wraps one behind a mutex when it has to be shared between goroutines.
package ringbuf

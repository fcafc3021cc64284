package ringbuf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360/ringbuf/errors"
)

var _ Buffer[int] = (*RingBuffer[int])(nil)

// slot holds either nothing or exactly one live element.
type slot[T any] struct {
	value T
	live  bool
}

// RingBuffer is a fixed-capacity FIFO that overwrites its oldest element when
// full. Storage is allocated once in New; Insert and Remove never allocate.
//
// A RingBuffer has a single owner and is not safe for concurrent use.
// Wrap it with NewSynchronized when several goroutines need it.
type RingBuffer[T any] struct {
	slots    []slot[T]
	count    int
	writeIdx int // next slot to write
	readIdx  int // next slot to read

	stats   *Statistics
	metrics *ringMetrics
	opts    *bufferOptions[T]
}

// New creates an empty buffer holding at most capacity elements.
// A capacity of zero or less fails with errors.ErrInvalidCapacity.
func New[T any](capacity int, options ...Option[T]) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity, "RingBuffer", "New",
			fmt.Sprintf("validate capacity %d", capacity))
	}

	opts := applyOptions(options...)

	var metrics *ringMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newRingMetrics(opts.metricsReg, opts.component, capacity)
		if err != nil {
			// keep the registry's classification
			return nil, errors.Wrap(err, "RingBuffer", "New", "metrics registration")
		}
	}

	return &RingBuffer[T]{
		slots:   make([]slot[T], capacity),
		stats:   NewStatistics(capacity),
		metrics: metrics,
		opts:    opts,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](capacity int, options ...Option[T]) *RingBuffer[T] {
	rb, err := New[T](capacity, options...)
	if err != nil {
		panic(err)
	}
	return rb
}

// Insert stores item at the write position. If the buffer is full the oldest
// element is evicted to make room and returned with ok == true; the length
// stays at capacity. Insert never fails.
func (rb *RingBuffer[T]) Insert(item T) (evicted T, ok bool) {
	if rb.count == len(rb.slots) {
		// Full: readIdx == writeIdx, so the evicted slot is the one rewritten below.
		evicted = rb.take(rb.readIdx)
		rb.readIdx = rb.next(rb.readIdx)
		ok = true
	} else {
		rb.count++
	}

	rb.slots[rb.writeIdx] = slot[T]{value: item, live: true}
	rb.writeIdx = rb.next(rb.writeIdx)

	rb.stats.recordInsert(ok)
	rb.stats.updateLen(int64(rb.count))
	if rb.metrics != nil {
		rb.metrics.recordInsert(ok, rb.count)
	}

	if ok {
		rb.debug("evicted oldest element")
		if rb.opts.dropCallback != nil {
			rb.opts.dropCallback(evicted)
		}
	}

	return evicted, ok
}

// Remove takes the oldest element. On an empty buffer it returns ok == false
// and leaves the buffer untouched.
func (rb *RingBuffer[T]) Remove() (item T, ok bool) {
	if rb.count == 0 {
		rb.stats.recordEmptyRead()
		if rb.metrics != nil {
			rb.metrics.recordEmptyRead()
		}
		rb.debug("remove on empty buffer")
		return item, false
	}

	item = rb.take(rb.readIdx)
	rb.readIdx = rb.next(rb.readIdx)
	rb.count--

	rb.stats.recordRemove()
	rb.stats.updateLen(int64(rb.count))
	if rb.metrics != nil {
		rb.metrics.recordRemove(rb.count)
	}

	return item, true
}

// Peek returns the oldest element without removing it.
func (rb *RingBuffer[T]) Peek() (item T, ok bool) {
	if rb.count == 0 {
		return item, false
	}
	rb.stats.recordPeek()
	return rb.slots[rb.readIdx].value, true
}

// Len returns the number of live elements.
func (rb *RingBuffer[T]) Len() int {
	return rb.count
}

// Cap returns the capacity fixed at construction.
func (rb *RingBuffer[T]) Cap() int {
	return len(rb.slots)
}

// IsFull reports whether Len equals Cap.
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.count == len(rb.slots)
}

// IsEmpty reports whether the buffer holds no elements.
func (rb *RingBuffer[T]) IsEmpty() bool {
	return rb.count == 0
}

// Reset releases every live element exactly once, oldest first, through the
// drop callback if one is set, and returns the buffer to its initial state.
func (rb *RingBuffer[T]) Reset() {
	var released []T
	if rb.opts.dropCallback != nil && rb.count > 0 {
		released = make([]T, 0, rb.count)
	}

	for rb.count > 0 {
		item := rb.take(rb.readIdx)
		rb.readIdx = rb.next(rb.readIdx)
		rb.count--
		if released != nil {
			released = append(released, item)
		}
	}
	rb.readIdx = 0
	rb.writeIdx = 0

	rb.stats.updateLen(0)
	if rb.metrics != nil {
		rb.metrics.updateLen(0)
	}

	// Callbacks run after the buffer is consistent again.
	for _, item := range released {
		rb.opts.dropCallback(item)
	}
}

// Close releases the buffer as a unit: live elements go through Reset and the
// buffer's collectors are removed from the metrics registry, so the component
// name may be reused. The buffer stays usable without metrics. Close is
// idempotent and always returns nil.
func (rb *RingBuffer[T]) Close() error {
	rb.Reset()
	if rb.metrics != nil {
		rb.metrics.unregister()
		rb.metrics = nil
	}
	return nil
}

// Stats returns the buffer statistics.
func (rb *RingBuffer[T]) Stats() *Statistics {
	return rb.stats
}

// String returns a diagnostic summary of the buffer state. Element values
// are never formatted.
func (rb *RingBuffer[T]) String() string {
	return fmt.Sprintf("RingBuffer{len: %d, cap: %d, write: %d, read: %d}",
		rb.count, len(rb.slots), rb.writeIdx, rb.readIdx)
}

// take moves the value out of slot i and marks the slot empty.
func (rb *RingBuffer[T]) take(i int) T {
	s := rb.slots[i]
	if !s.live {
		panic(fmt.Sprintf("ringbuf: read of empty slot %d in %s", i, rb))
	}
	rb.slots[i] = slot[T]{}
	return s.value
}

func (rb *RingBuffer[T]) next(i int) int {
	i++
	if i == len(rb.slots) {
		return 0
	}
	return i
}

func (rb *RingBuffer[T]) debug(msg string) {
	logger := rb.opts.logger
	if logger == nil || !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(msg,
		"component", rb.opts.component,
		"len", rb.count,
		"cap", len(rb.slots),
		"write", rb.writeIdx,
		"read", rb.readIdx)
}

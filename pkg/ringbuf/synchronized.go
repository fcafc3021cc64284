package ringbuf

import "sync"

var _ Buffer[int] = (*Synchronized[int])(nil)

// Synchronized guards a RingBuffer with a mutex so that several goroutines
// may share it. The wrapped buffer must not be used directly afterwards.
//
// The drop callback runs while the lock is held and must not call back into
// the Synchronized buffer.
type Synchronized[T any] struct {
	mu sync.Mutex
	rb *RingBuffer[T]
}

// NewSynchronized wraps rb.
func NewSynchronized[T any](rb *RingBuffer[T]) *Synchronized[T] {
	return &Synchronized[T]{rb: rb}
}

func (s *Synchronized[T]) Insert(item T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.Insert(item)
}

func (s *Synchronized[T]) Remove() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.Remove()
}

func (s *Synchronized[T]) Peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.Peek()
}

func (s *Synchronized[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.Len()
}

// Cap is immutable, so no lock is needed.
func (s *Synchronized[T]) Cap() int {
	return s.rb.Cap()
}

func (s *Synchronized[T]) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.IsFull()
}

func (s *Synchronized[T]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.IsEmpty()
}

func (s *Synchronized[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rb.Reset()
}

func (s *Synchronized[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.Close()
}

// Stats needs no lock; Statistics is safe for concurrent reads.
func (s *Synchronized[T]) Stats() *Statistics {
	return s.rb.Stats()
}

func (s *Synchronized[T]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rb.String()
}

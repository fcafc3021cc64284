package ringbuf

// Buffer is the contract shared by RingBuffer and its Synchronized wrapper.
type Buffer[T any] interface {
	// Insert stores item. When the buffer is full the oldest element is
	// evicted and returned with ok == true.
	Insert(item T) (evicted T, ok bool)

	// Remove takes the oldest element. ok is false when the buffer is empty.
	Remove() (item T, ok bool)

	// Peek returns the oldest element without removing it.
	Peek() (item T, ok bool)

	// Len returns the number of live elements.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int

	IsFull() bool
	IsEmpty() bool

	// Reset releases every live element and returns the buffer to empty.
	Reset()

	// Close releases the buffer and any metrics it registered.
	Close() error

	// Stats returns the always-on statistics.
	Stats() *Statistics

	String() string
}

// DropCallback is called for each element released by eviction or Reset.
type DropCallback[T any] func(item T)

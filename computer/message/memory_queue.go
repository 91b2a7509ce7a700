package message

import "sync"

// Static and compile-time check to ensure inMemoryQueue implements
// Queue interface.
var _ Queue = (*inMemoryQueue)(nil)

// inMemoryQueue stores messages in memory. Messages can be enqueued
// concurrently but the returned iterator is not safe for concurrent access.
type inMemoryQueue struct {
	mu   sync.Mutex
	msgs []Message
	head int
	msg  Message
}

// NewInMemoryQueue creates a new in-memory queue instance. This function can
// serve as a Factory.
func NewInMemoryQueue() Queue {
	return &inMemoryQueue{}
}

// Enqueue adds a new message at the end of the queue.
func (q *inMemoryQueue) Enqueue(msg Message) error {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()

	return nil
}

// PendingMessages checks the queue for unconsumed messages.
func (q *inMemoryQueue) PendingMessages() bool {
	return q.Len() != 0
}

// Len returns the number of unconsumed messages.
func (q *inMemoryQueue) Len() int {
	q.mu.Lock()
	n := len(q.msgs) - q.head
	q.mu.Unlock()

	return n
}

// DiscardMessages drops all unconsumed messages from the queue. The backing
// slice is kept so the next superstep can reuse its capacity.
func (q *inMemoryQueue) DiscardMessages() error {
	q.mu.Lock()

	for i := range q.msgs {
		q.msgs[i] = nil
	}

	q.msgs = q.msgs[:0]
	q.head = 0
	q.msg = nil

	q.mu.Unlock()

	return nil
}

// Messages returns an iterator of queued messages.
func (q *inMemoryQueue) Messages() Iterator {
	return q
}

// Close releases all resources consumed by the queue.
func (q *inMemoryQueue) Close() error {
	return q.DiscardMessages()
}

// Next loads the next message in enqueue order.
func (q *inMemoryQueue) Next() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.msgs) {
		return false
	}

	q.msg = q.msgs[q.head]
	q.head++

	return true
}

// Message returns the current message from the result set.
func (q *inMemoryQueue) Message() Message {
	q.mu.Lock()
	msg := q.msg
	q.mu.Unlock()

	return msg
}

// Error returns the last error encountered by the iterator.
func (q *inMemoryQueue) Error() error {
	return nil
}

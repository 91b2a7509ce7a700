/*
	message package provides the per-vertex inboxes used by the graph
	computer. Every vertex owns two queues: one filled during superstep n
	and one drained during superstep n, swapped at each barrier.
*/

package message

// Message should be implemented by types that vertex programs exchange.
type Message interface {
	// Type returns the type of this Message.
	Type() string
}

// Queue should be implemented by types that can serve as vertex inboxes.
// Enqueue may be called concurrently by any number of senders; the
// remaining methods are only called by the worker that owns the vertex.
type Queue interface {
	// Enqueue adds a new message at the end of the queue.
	Enqueue(msg Message) error

	// PendingMessages checks the queue for unconsumed messages.
	PendingMessages() bool

	// Len returns the number of unconsumed messages.
	Len() int

	// DiscardMessages drops all unconsumed messages from the queue.
	DiscardMessages() error

	// Messages returns an iterator over the queued messages in the order
	// they were enqueued.
	Messages() Iterator

	// Close releases all resources consumed by the queue.
	Close() error
}

// Iterator is implemented by types that iterate queued messages.
type Iterator interface {
	// Next loads the next message, returns false when no more messages
	// are available or when an error occurs.
	Next() bool

	// Message returns the currently loaded message.
	Message() Message

	// Error returns the last error encountered by the iterator.
	Error() error
}

// Factory creates new Queue instances.
type Factory func() Queue

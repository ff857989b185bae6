package ipc

// Queue is the FIFO handoff between transport goroutines and the tick
// loop. Pushes may block briefly when the buffer is full rather than drop
// a command; the drain side never blocks.
type Queue struct {
	ch chan Message
}

// NewQueue builds a queue with room for a burst of commands between ticks.
func NewQueue() *Queue {
	return &Queue{ch: make(chan Message, 256)}
}

// Push enqueues a message in arrival order.
func (q *Queue) Push(m Message) {
	q.ch <- m
}

// Drain returns every message queued since the last drain, in FIFO order,
// without blocking.
func (q *Queue) Drain() []Message {
	var out []Message
	for {
		select {
		case m := <-q.ch:
			out = append(out, m)
		default:
			return out
		}
	}
}

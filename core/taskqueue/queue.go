package taskqueue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultSize is the queue capacity used when New is given a non-positive size.
const DefaultSize = 64

// Queue runs posted tasks one at a time in submission order.
type Queue struct {
	tasks  chan func()
	done   chan struct{}
	logger *zap.Logger

	mu     sync.Mutex
	closed bool

	// exec serializes task execution between Run and Drain.
	exec sync.Mutex
}

// New creates a queue holding up to size pending tasks.
func New(size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		tasks:  make(chan func(), size),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Post enqueues task. It returns false when the queue is closed or full;
// Post never blocks.
func (q *Queue) Post(task func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Debug("Task dropped, queue closed")
		return false
	}
	select {
	case q.tasks <- task:
		return true
	default:
		q.logger.Warn("Task dropped, queue full", zap.Int("capacity", cap(q.tasks)))
		return false
	}
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// Run consumes tasks until ctx is done or the queue is closed.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case task := <-q.tasks:
			q.run(task)
		}
	}
}

// Drain runs every task pending at the time of the call and returns how
// many ran. Tasks posted by those tasks run in the same call.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case task := <-q.tasks:
			if q.run(task) {
				n++
			}
		default:
			return n
		}
	}
}

// Close stops the queue and discards pending tasks. It is safe to call more
// than once.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.done)
	q.mu.Unlock()

	discarded := 0
	for {
		select {
		case <-q.tasks:
			discarded++
		default:
			if discarded > 0 {
				q.logger.Debug("Discarded pending tasks", zap.Int("count", discarded))
			}
			return
		}
	}
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) run(task func()) bool {
	q.exec.Lock()
	defer q.exec.Unlock()
	if q.isClosed() {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Task panicked", zap.Any("panic", r))
		}
	}()
	task()
	return true
}

// Package taskqueue provides a deferred, single-consumer task queue.
//
// Producers Post closures that must not run inline, typically work that has to
// wait until the host finished its own per-frame bookkeeping. Tasks run one at
// a time in submission order, either on a background consumer started with Run
// or synchronously through Drain when the caller owns the frame boundary (CLI
// tools and tests).
//
// Close stops the queue. Tasks still pending at that point are discarded and
// never run, so a task cannot observe state that was torn down after Close.
//
// # Usage
//
//	q := taskqueue.New(64, logger)
//	go q.Run(ctx)
//	q.Post(func() { ... })
//	defer q.Close()
package taskqueue

// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package extract

import (
	"context"
	"sync"
)

// Queue is a bounded FIFO of batches between the one scanner and the
// writer pool. The buffered channel provides the backpressure: Push
// blocks while capacity batches are already pending, and closing the
// channel is the production-finished broadcast every idle worker
// observes.
//
// Delivery is at-most-once per batch and in production order. Only
// indices are buffered, so memory stays proportional to
// capacity * documents-per-shard regardless of payload size.
type Queue struct {
	ch        chan Batch
	closeOnce sync.Once
}

// NewQueue returns a queue holding at most capacity pending batches.
// Capacity should match the worker count, bounding in-flight work to
// roughly one batch per worker.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Batch, capacity)}
}

// Push enqueues b, blocking while the queue is full. It returns the
// context error if ctx is cancelled first; the batch is never silently
// dropped otherwise. Push must not be called after Finish.
func (q *Queue) Push(ctx context.Context, b Batch) error {
	select {
	case q.ch <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop blocks until a batch is pending or production has finished.
// Pending batches are returned in FIFO order; once production is
// finished and the queue drained, every call returns the termination
// sentinel (IsTerminator reports true). Callers must stop popping after
// acting on the sentinel.
func (q *Queue) Pop(ctx context.Context) (Batch, error) {
	select {
	case b, ok := <-q.ch:
		if !ok {
			return terminator, nil
		}
		return b, nil
	case <-ctx.Done():
		return terminator, ctx.Err()
	}
}

// Finish marks production as complete. Idempotent. Pending batches are
// still drained normally before Pop starts returning the sentinel.
func (q *Queue) Finish() {
	q.closeOnce.Do(func() { close(q.ch) })
}

// Len reports the number of pending batches. Diagnostic only.
func (q *Queue) Len() int {
	return len(q.ch)
}

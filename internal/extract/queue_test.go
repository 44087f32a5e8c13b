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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(3)

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, q.Push(ctx, Batch{ShardID: i, Indices: []uint32{uint32(i)}}))
	}
	q.Finish()

	for i := uint64(1); i <= 3; i++ {
		b, err := q.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, b.ShardID)
		assert.False(t, b.IsTerminator())
	}

	b, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.True(t, b.IsTerminator())
}

func TestQueueBackpressure(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(2)

	require.NoError(t, q.Push(ctx, Batch{ShardID: 1, Indices: []uint32{1}}))
	require.NoError(t, q.Push(ctx, Batch{ShardID: 2, Indices: []uint32{2}}))
	assert.Equal(t, 2, q.Len())

	pushed := make(chan struct{})
	go func() {
		_ = q.Push(ctx, Batch{ShardID: 3, Indices: []uint32{3}})
		close(pushed)
	}()

	// The third push must suspend while the queue is at capacity.
	select {
	case <-pushed:
		t.Fatal("push succeeded past capacity")
	case <-time.After(50 * time.Millisecond):
	}

	b, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.ShardID)

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("push did not resume after a slot freed")
	}
}

func TestQueueTerminatorReachesAllConsumers(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(4)

	const consumers = 8
	var wg sync.WaitGroup
	terminated := make(chan struct{}, consumers)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				b, err := q.Pop(ctx)
				if err != nil {
					return
				}
				if b.IsTerminator() {
					terminated <- struct{}{}
					return
				}
			}
		}()
	}

	require.NoError(t, q.Push(ctx, Batch{ShardID: 1, Indices: []uint32{1}}))
	require.NoError(t, q.Push(ctx, Batch{ShardID: 2, Indices: []uint32{2}}))
	q.Finish()
	wg.Wait()

	assert.Len(t, terminated, consumers)
}

func TestQueueFinishIdempotent(t *testing.T) {
	q := NewQueue(1)
	q.Finish()
	q.Finish()

	b, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.True(t, b.IsTerminator())
}

func TestQueuePopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(1)

	done := make(chan error, 1)
	go func() {
		_, err := q.Pop(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("pop did not observe cancellation")
	}
}

func TestQueuePushCancelledWhenFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(1)
	require.NoError(t, q.Push(ctx, Batch{ShardID: 1, Indices: []uint32{1}}))

	done := make(chan error, 1)
	go func() {
		done <- q.Push(ctx, Batch{ShardID: 2, Indices: []uint32{2}})
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("push did not observe cancellation")
	}
}

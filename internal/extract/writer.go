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
	"fmt"
	"log/slog"

	"github.com/cardinalhq/zimtodir/internal/zimsource"
)

// Writer is one member of the pool. It owns a private archive handle
// (the source is not safe for concurrent use) and repeatedly turns one
// popped batch into one shard file until it receives the termination
// sentinel. Shard IDs are unique per batch, so two writers never touch
// the same file.
type Writer struct {
	src     zimsource.Source
	queue   *Queue
	dir     string
	padding int
	logger  *slog.Logger
}

// NewWriter returns a pool member writing shards into dir. src must be
// private to this writer; the writer does not close it.
func NewWriter(src zimsource.Source, queue *Queue, dir string, padding int, logger *slog.Logger) *Writer {
	return &Writer{
		src:     src,
		queue:   queue,
		dir:     dir,
		padding: padding,
		logger:  logger,
	}
}

// Run consumes batches until the termination sentinel arrives. Any
// resolve or write failure is fatal for the run; the caller's errgroup
// context propagates the cancellation to the other workers.
func (w *Writer) Run(ctx context.Context) error {
	for {
		batch, err := w.queue.Pop(ctx)
		if err != nil {
			return err
		}
		if batch.IsTerminator() {
			return nil
		}
		if err := w.writeShard(batch); err != nil {
			return fmt.Errorf("shard %d: %w", batch.ShardID, err)
		}
	}
}

func (w *Writer) writeShard(batch Batch) error {
	path := ShardPath(w.dir, batch.ShardID, w.padding)
	out, err := CreateShard(path)
	if err != nil {
		return err
	}
	for _, index := range batch.Indices {
		payload, err := w.src.Payload(index)
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("resolving record %d: %w", index, err)
		}
		if err := out.Append(payload); err != nil {
			_ = out.Close()
			return fmt.Errorf("writing record %d: %w", index, err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	w.logger.Debug("Shard written",
		slog.Uint64("shardID", batch.ShardID),
		slog.Int("records", len(batch.Indices)))
	return nil
}

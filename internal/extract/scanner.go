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

const progressEvery = 1000

// Scanner drives the single sequential pass over the archive. It is the
// sole producer: qualifying indices accumulate into batches of
// perShard entries that are pushed to the queue, blocking under
// backpressure when the writer pool falls behind.
type Scanner struct {
	src      zimsource.Source
	queue    *Queue
	filter   Filter
	perShard int
	logger   *slog.Logger
}

// NewScanner returns a scanner producing into queue. src must be a
// private handle; the scanner does not close it.
func NewScanner(src zimsource.Source, queue *Queue, filter Filter, perShard int, logger *slog.Logger) *Scanner {
	return &Scanner{
		src:      src,
		queue:    queue,
		filter:   filter,
		perShard: perShard,
		logger:   logger,
	}
}

// Run walks the archive once, in ascending index order, and pushes the
// resulting batches. Production is marked finished on every exit path
// so workers always unblock, but a scan error still fails the run
// through the returned error.
func (s *Scanner) Run(ctx context.Context) error {
	defer s.queue.Finish()

	var (
		shardID uint64
		kept    int
		drops   [DropTitle + 1]int
		indices = make([]uint32, 0, s.perShard)
	)

	seal := func() error {
		shardID++
		batch := Batch{ShardID: shardID, Indices: indices}
		if err := s.queue.Push(ctx, batch); err != nil {
			return fmt.Errorf("pushing batch %d: %w", shardID, err)
		}
		indices = make([]uint32, 0, s.perShard)
		return nil
	}

	for {
		entry, ok, err := s.src.Next()
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		if !ok {
			break
		}
		if reason := s.filter.Check(entry); reason != DropNone {
			drops[reason]++
			s.logger.Debug("Dropping entry",
				slog.String("title", entry.Title),
				slog.String("reason", reason.String()))
			continue
		}
		kept++
		if kept%progressEvery == 0 {
			s.logger.Info("Scan progress",
				slog.Int("kept", kept),
				slog.Uint64("batches", shardID))
		}
		indices = append(indices, entry.Index)
		if len(indices) == s.perShard {
			if err := seal(); err != nil {
				return err
			}
		}
	}

	if len(indices) > 0 {
		if err := seal(); err != nil {
			return err
		}
	}

	s.logger.Info("Scan complete",
		slog.Int("kept", kept),
		slog.Uint64("batches", shardID),
		slog.Int("droppedNamespace", drops[DropNamespace]),
		slog.Int("droppedDeleted", drops[DropDeleted]),
		slog.Int("droppedRedirect", drops[DropRedirect]),
		slog.Int("droppedTitle", drops[DropTitle]))
	return nil
}

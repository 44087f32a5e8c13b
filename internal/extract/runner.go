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
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/cardinalhq/zimtodir/internal/logctx"
	"github.com/cardinalhq/zimtodir/internal/zimsource"
)

// Runner wires one scanner and a writer pool over a shared queue and
// drives a full extraction run.
type Runner struct {
	cfg    Config
	opener zimsource.Opener
	filter Filter
}

// NewRunner validates cfg and prepares a run over the archive behind
// opener.
func NewRunner(cfg Config, opener zimsource.Opener) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extraction config: %w", err)
	}
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, opener: opener, filter: filter}, nil
}

// Run executes the extraction: one scanner goroutine producing batches,
// Threads writer goroutines consuming them. The first error from any
// goroutine cancels the group context; the survivors observe the
// cancellation at their next queue operation and exit. Run returns nil
// only when the scan finished and every writer drained to the
// termination sentinel.
func (r *Runner) Run(ctx context.Context) error {
	logger := logctx.FromContext(ctx)

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	scanSrc, err := r.opener.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening archive for scan: %w", err)
	}
	defer func() { _ = scanSrc.Close() }()

	queue := NewQueue(r.cfg.Threads)
	g, gctx := errgroup.WithContext(ctx)

	scanner := NewScanner(scanSrc, queue, r.filter, r.cfg.DocumentsPerShard, logger)
	g.Go(func() error {
		return scanner.Run(gctx)
	})

	logger.Info("Starting writer pool",
		slog.Int("threads", r.cfg.Threads),
		slog.Int("documentsPerShard", r.cfg.DocumentsPerShard),
		slog.String("outputDir", r.cfg.OutputDir))

	for i := 0; i < r.cfg.Threads; i++ {
		workerLogger := logger.With(slog.Int("worker", i))
		g.Go(func() error {
			src, err := r.opener.Open(gctx)
			if err != nil {
				return fmt.Errorf("opening archive for worker: %w", err)
			}
			defer func() { _ = src.Close() }()
			return NewWriter(src, queue, r.cfg.OutputDir, r.cfg.ZeroPadding, workerLogger).Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Extraction complete")
	return nil
}

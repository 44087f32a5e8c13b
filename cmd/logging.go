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

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/cardinalhq/zimtodir/internal/idgen"
)

// setupLogging builds the process logger: a text handler on stderr,
// fanned out to logFile as well when one is configured. Every line
// carries the run ID so interleaved logs from repeated runs can be
// told apart. The returned func closes the log file, if any.
func setupLogging(logFile string) (*slog.Logger, func() error, error) {
	var opts *slog.HandlerOptions
	if os.Getenv("DEBUG") != "" || os.Getenv("ZIMTODIR_DEBUG") != "" {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}

	runID := idgen.NewRunID()

	handler := slog.Handler(slog.NewTextHandler(os.Stderr, opts))
	closeFx := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
		}
		handler = slogmulti.Fanout(
			handler,
			slog.NewTextHandler(f, opts),
		)
		closeFx = f.Close
	}

	logger := slog.New(handler).With(slog.Int64("runID", runID))
	slog.SetDefault(logger)
	return logger, closeFx, nil
}

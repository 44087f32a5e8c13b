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
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/zimtodir/config"
	"github.com/cardinalhq/zimtodir/internal/extract"
	"github.com/cardinalhq/zimtodir/internal/logctx"
	"github.com/cardinalhq/zimtodir/internal/zimsource"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract qualifying articles into shard files",
		RunE:  runExtract,
	}

	cmd.Flags().StringP("input", "i", "", "the source dump (a directory of HTML files)")
	cmd.Flags().StringP("output", "o", "", "the output directory for shard files")
	cmd.Flags().StringP("language", "l", "", "the two-letter language code of the dump")
	cmd.Flags().IntP("documents", "d", 0, "the number of articles saved into a single shard")
	cmd.Flags().IntP("zeroes", "Z", 0, "the number of digits in shard file names")
	cmd.Flags().IntP("threads", "T", 0, "the number of parallel writer threads")
	cmd.Flags().String("namespace", "", "the archive namespace to keep")
	cmd.Flags().String("exclude-titles", "", "regexp rejecting articles by title (overrides the language default)")

	rootCmd.AddCommand(cmd)
}

func runExtract(c *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := applyExtractFlags(c, &cfg.Extract); err != nil {
		return err
	}

	logger, closeFx, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFx(); err != nil {
			slog.Error("Error closing log file", slog.Any("error", err))
		}
	}()

	opener, err := openerFor(cfg.Extract.InputFile)
	if err != nil {
		return err
	}

	runner, err := extract.NewRunner(cfg.Extract, opener)
	if err != nil {
		return err
	}

	doneCtx, doneCancel := handleSignals(context.Background())
	defer doneCancel()

	return runner.Run(logctx.WithLogger(doneCtx, logger))
}

// applyExtractFlags overlays any flags the user actually set onto the
// loaded configuration.
func applyExtractFlags(c *cobra.Command, cfg *extract.Config) error {
	set := map[string]func() error{
		"input":          stringFlag(c, "input", &cfg.InputFile),
		"output":         stringFlag(c, "output", &cfg.OutputDir),
		"language":       stringFlag(c, "language", &cfg.Language),
		"namespace":      stringFlag(c, "namespace", &cfg.Namespace),
		"exclude-titles": stringFlag(c, "exclude-titles", &cfg.TitleExcludePattern),
		"documents":      intFlag(c, "documents", &cfg.DocumentsPerShard),
		"zeroes":         intFlag(c, "zeroes", &cfg.ZeroPadding),
		"threads":        intFlag(c, "threads", &cfg.Threads),
	}
	for name, apply := range set {
		if c.Flags().Changed(name) {
			if err := apply(); err != nil {
				return fmt.Errorf("flag --%s: %w", name, err)
			}
		}
	}
	return nil
}

func stringFlag(c *cobra.Command, name string, dst *string) func() error {
	return func() error {
		v, err := c.Flags().GetString(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func intFlag(c *cobra.Command, name string, dst *int) func() error {
	return func() error {
		v, err := c.Flags().GetInt(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// openerFor picks the archive implementation for the input path.
// Directories are read with the built-in filesystem source; ZIM
// container decoding plugs in behind zimsource.Opener.
//
// TODO: add a libzim-backed Opener so .zim containers can be read
// without unpacking them first.
func openerFor(input string) (zimsource.Opener, error) {
	if input == "" {
		return nil, fmt.Errorf("input must be set (-i)")
	}
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", input, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s: only unpacked dump directories are supported", input)
	}
	return &zimsource.DirOpener{Root: input}, nil
}

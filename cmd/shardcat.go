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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/zimtodir/internal/extract"
)

func init() {
	cmd := &cobra.Command{
		Use:   "shard-cat",
		Short: "Decode a shard file and dump its documents",
		RunE: func(c *cobra.Command, _ []string) error {
			filename, err := c.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}
			outDir, err := c.Flags().GetString("dir")
			if err != nil {
				return fmt.Errorf("failed to get dir flag: %w", err)
			}

			return runShardCat(filename, outDir)
		},
	}

	rootCmd.AddCommand(cmd)

	cmd.Flags().String("file", "", "Shard file to read")
	cmd.Flags().String("dir", "", "Write each document to this directory instead of stdout")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Errorf("failed to mark file flag as required: %w", err))
	}
}

// runShardCat streams the framed documents out of one shard. With an
// output directory each document lands in its own numbered .html file;
// otherwise the payloads are concatenated to stdout.
func runShardCat(filename, outDir string) error {
	r, err := extract.OpenShard(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for n := 0; ; n++ {
		payload, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document %d: %w", n, err)
		}
		if outDir == "" {
			if _, err := os.Stdout.Write(payload); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(outDir, fmt.Sprintf("%06d.html", n))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
}

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
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// languagePatterns maps a Wikipedia language code to the title pattern
// that identifies its disambiguation pages.
var languagePatterns = map[string]string{
	"hu": regexp.QuoteMeta("(egyértelműsítő lap)"),
	"en": regexp.QuoteMeta("(disambiguation)"),
}

// Config holds the extraction settings.
type Config struct {
	// InputFile is the archive to extract from.
	InputFile string `mapstructure:"input_file"`

	// OutputDir receives the shard files; created if missing.
	OutputDir string `mapstructure:"output_dir"`

	// DocumentsPerShard is the batch size: how many records go into
	// one shard file.
	DocumentsPerShard int `mapstructure:"documents_per_shard"`

	// Threads is the writer pool size and the queue capacity.
	Threads int `mapstructure:"threads"`

	// ZeroPadding is the width shard IDs are zero-padded to in file
	// names.
	ZeroPadding int `mapstructure:"zero_padding"`

	// Namespace is the archive namespace to keep.
	Namespace string `mapstructure:"namespace"`

	// Language selects a built-in disambiguation pattern when
	// TitleExcludePattern is empty.
	Language string `mapstructure:"language"`

	// TitleExcludePattern is a regexp rejecting entries by title. When
	// set it overrides the Language table.
	TitleExcludePattern string `mapstructure:"title_exclude_pattern"`
}

// DefaultConfig returns the defaults for a Hungarian Wikipedia dump.
func DefaultConfig() Config {
	return Config{
		DocumentsPerShard: 2500,
		Threads:           10,
		ZeroPadding:       4,
		Namespace:         "A",
		Language:          "hu",
	}
}

// Validate checks the configuration, accumulating every problem found.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.InputFile == "" {
		errs = multierror.Append(errs, fmt.Errorf("input_file must be set"))
	}
	if c.OutputDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("output_dir must be set"))
	}
	if c.DocumentsPerShard <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("documents_per_shard must be positive, got %d", c.DocumentsPerShard))
	}
	if c.Threads <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("threads must be positive, got %d", c.Threads))
	}
	if c.ZeroPadding <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("zero_padding must be positive, got %d", c.ZeroPadding))
	}
	if len(c.Namespace) != 1 {
		errs = multierror.Append(errs, fmt.Errorf("namespace must be a single character, got %q", c.Namespace))
	}
	if _, err := c.excludePattern(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// Filter builds the rejection predicates from the configuration. The
// configuration must have passed Validate.
func (c Config) Filter() (Filter, error) {
	pattern, err := c.excludePattern()
	if err != nil {
		return Filter{}, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Filter{}, fmt.Errorf("compiling title_exclude_pattern: %w", err)
	}
	return Filter{Namespace: c.Namespace[0], Exclude: re}, nil
}

func (c Config) excludePattern() (string, error) {
	if c.TitleExcludePattern != "" {
		if _, err := regexp.Compile(c.TitleExcludePattern); err != nil {
			return "", fmt.Errorf("title_exclude_pattern: %w", err)
		}
		return c.TitleExcludePattern, nil
	}
	pattern, ok := languagePatterns[c.Language]
	if !ok {
		return "", fmt.Errorf("language %q has no built-in exclusion pattern (have hu, en); set title_exclude_pattern", c.Language)
	}
	return pattern, nil
}

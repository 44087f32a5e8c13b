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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2500, cfg.DocumentsPerShard)
	assert.Equal(t, 10, cfg.Threads)
	assert.Equal(t, 4, cfg.ZeroPadding)
	assert.Equal(t, "A", cfg.Namespace)
	assert.Equal(t, "hu", cfg.Language)
	assert.Empty(t, cfg.TitleExcludePattern)
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.InputFile = "dump"
	valid.OutputDir = "out"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing input", func(c *Config) { c.InputFile = "" }, "input_file"},
		{"missing output", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"zero documents", func(c *Config) { c.DocumentsPerShard = 0 }, "documents_per_shard"},
		{"negative threads", func(c *Config) { c.Threads = -1 }, "threads"},
		{"zero padding", func(c *Config) { c.ZeroPadding = 0 }, "zero_padding"},
		{"long namespace", func(c *Config) { c.Namespace = "AB" }, "namespace"},
		{"unknown language", func(c *Config) { c.Language = "xx" }, "language"},
		{"bad pattern", func(c *Config) { c.TitleExcludePattern = "(" }, "title_exclude_pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateAccumulates(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_file")
	assert.Contains(t, err.Error(), "output_dir")
	assert.Contains(t, err.Error(), "documents_per_shard")
	assert.Contains(t, err.Error(), "threads")
}

func TestConfigFilterLanguages(t *testing.T) {
	tests := []struct {
		language string
		matching string
		clean    string
	}{
		{"hu", "Mars (egyértelműsítő lap)", "Mars"},
		{"en", "Mars (disambiguation)", "Mars"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Language = tt.language
			f, err := cfg.Filter()
			require.NoError(t, err)
			assert.Equal(t, byte('A'), f.Namespace)
			assert.True(t, f.Exclude.MatchString(tt.matching))
			assert.False(t, f.Exclude.MatchString(tt.clean))
		})
	}
}

func TestConfigFilterExplicitPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = "xx"
	cfg.TitleExcludePattern = `\(Begriffsklärung\)$`
	f, err := cfg.Filter()
	require.NoError(t, err)
	assert.True(t, f.Exclude.MatchString("Merkur (Begriffsklärung)"))
	assert.False(t, f.Exclude.MatchString("Merkur"))
}

func TestConfigFilterUnknownLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = "de"
	_, err := cfg.Filter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `language "de"`)
}

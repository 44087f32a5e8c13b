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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// ShardSuffix is the fixed extension of shard files.
const ShardSuffix = ".htmls.gz"

// ShardFileName formats a shard ID as a file name, zero-padded to
// padding digits.
func ShardFileName(shardID uint64, padding int) string {
	return fmt.Sprintf("%0*d%s", padding, shardID, ShardSuffix)
}

// ShardPath joins the output directory with the shard's file name.
func ShardPath(dir string, shardID uint64, padding int) string {
	return filepath.Join(dir, ShardFileName(shardID, padding))
}

// ShardWriter writes one shard file: a gzip stream of framed records,
// each frame a 4-byte big-endian length followed by that many payload
// bytes. There are no separators, headers, or trailers beyond the
// per-record prefix.
type ShardWriter struct {
	file *os.File
	gz   *gzip.Writer
}

// CreateShard opens path for writing, truncating any existing file.
func CreateShard(path string) (*ShardWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating shard %s: %w", path, err)
	}
	return &ShardWriter{file: f, gz: gzip.NewWriter(f)}, nil
}

// Append frames and writes one payload.
func (w *ShardWriter) Append(payload []byte) error {
	if len(payload) > math.MaxUint32 {
		return fmt.Errorf("payload of %d bytes exceeds frame limit", len(payload))
	}
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.gz.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.gz.Write(payload)
	return err
}

// Close flushes the compressed stream fully and closes the file. The
// shard is immutable once Close returns.
func (w *ShardWriter) Close() error {
	gzErr := w.gz.Close()
	fileErr := w.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// ShardReader decodes a shard file back into payloads. Used by the
// shard-cat command and as the round-trip check on the on-disk format.
type ShardReader struct {
	file *os.File
	gz   *gzip.Reader
}

// OpenShard opens path for reading.
func OpenShard(path string) (*ShardReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shard %s: %w", path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decompressing shard %s: %w", path, err)
	}
	return &ShardReader{file: f, gz: gz}, nil
}

// Next returns the next payload, or io.EOF cleanly at end-of-stream. A
// truncated frame is an error, not EOF.
func (r *ShardReader) Next() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r.gz, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading frame length: %w", err)
	}
	payload := make([]byte, binary.BigEndian.Uint32(prefix[:]))
	if _, err := io.ReadFull(r.gz, payload); err != nil {
		return nil, fmt.Errorf("reading frame payload: %w", err)
	}
	return payload, nil
}

func (r *ShardReader) Close() error {
	gzErr := r.gz.Close()
	fileErr := r.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

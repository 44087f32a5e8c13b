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

// Package extract implements the extraction engine: a single sequential
// scanner that classifies archive entries and batches the indices of
// qualifying records, a bounded queue providing backpressure, and a
// pool of writer workers that turn batches into compressed shard files.
package extract

// Batch is one unit of work: the archive indices destined for one shard
// file. ShardID values are assigned by the scanner, strictly increasing
// from 1 with no gaps, so shard file names line up with production
// order regardless of which worker writes them. Indices preserve
// archive scan order.
type Batch struct {
	ShardID uint64
	Indices []uint32
}

// terminator is the in-band sentinel a worker receives once production
// has finished and the queue is drained. It is never written to disk.
var terminator = Batch{}

// IsTerminator reports whether b is the end-of-work sentinel.
func (b Batch) IsTerminator() bool {
	return b.ShardID == 0 && len(b.Indices) == 0
}

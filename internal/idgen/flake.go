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

// Package idgen produces the run IDs attached to every log line, so
// interleaved output from repeated runs can be told apart.
package idgen

import (
	"math/rand/v2"
	"time"

	"github.com/sony/sonyflake"
)

// flakeEpoch anchors sonyflake IDs; changing it reorders IDs across
// versions, so leave it alone.
var flakeEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// NewRunID returns a positive int64 that increases roughly in time
// order. Falls back to a random value if the flake generator cannot be
// built or is exhausted; run IDs only need to be distinct, not dense.
func NewRunID() int64 {
	sf, err := sonyflake.New(sonyflake.Settings{StartTime: flakeEpoch})
	if err != nil || sf == nil {
		return rand.Int64()
	}
	id, err := sf.NextID()
	if err != nil {
		return rand.Int64()
	}
	return int64(id)
}

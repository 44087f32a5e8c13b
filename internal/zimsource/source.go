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

// Package zimsource defines the boundary to the archive decoder. The
// extraction engine only ever sees these types; the actual ZIM parsing
// lives behind an Opener supplied by the caller.
package zimsource

import "context"

// Entry is the metadata for one archive record, as observed during the
// sequential scan. The payload is not materialized here; workers fetch
// it later by index through their own Source handle.
type Entry struct {
	Index      uint32
	Title      string
	Namespace  byte
	IsRedirect bool
	IsDeleted  bool
}

// Source is a single-threaded view of one archive. Next drives one
// forward pass over the entries in ascending index order and is not
// restartable; Payload resolves the raw bytes for any index previously
// seen via Next on an equivalent Source over the same archive.
//
// A Source is not safe for concurrent use. Every goroutine that touches
// the archive must hold its own instance, obtained from an Opener.
type Source interface {
	// Next returns the next entry in scan order. The second return is
	// false when the archive is exhausted.
	Next() (Entry, bool, error)

	// Payload returns the raw record bytes for index.
	Payload(index uint32) ([]byte, error)

	Close() error
}

// Opener mints independent Source instances over the same archive, one
// per goroutine that needs archive access.
type Opener interface {
	Open(ctx context.Context) (Source, error)
}

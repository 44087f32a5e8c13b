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

	"github.com/cardinalhq/zimtodir/internal/zimsource"
)

// mockOpener is an in-memory archive. Every Open hands out an
// independent cursor over the same entries, matching the one-handle-
// per-goroutine contract of the real source.
type mockOpener struct {
	entries  []zimsource.Entry
	payloads map[uint32][]byte

	// failPayload, when set, makes Payload fail for that index.
	failPayload uint32
	failSet     bool
}

type mockSource struct {
	o   *mockOpener
	pos int
}

func (o *mockOpener) Open(_ context.Context) (zimsource.Source, error) {
	return &mockSource{o: o}, nil
}

func (s *mockSource) Next() (zimsource.Entry, bool, error) {
	if s.pos >= len(s.o.entries) {
		return zimsource.Entry{}, false, nil
	}
	e := s.o.entries[s.pos]
	s.pos++
	return e, true, nil
}

func (s *mockSource) Payload(index uint32) ([]byte, error) {
	if s.o.failSet && s.o.failPayload == index {
		return nil, fmt.Errorf("record %d unreadable", index)
	}
	p, ok := s.o.payloads[index]
	if !ok {
		return nil, fmt.Errorf("no payload for index %d", index)
	}
	return p, nil
}

func (s *mockSource) Close() error { return nil }

// article returns a qualifying entry for the default test filter.
func article(index uint32, title string) zimsource.Entry {
	return zimsource.Entry{Index: index, Title: title, Namespace: 'A'}
}

// testFilter keeps namespace 'A' with no title exclusions.
func testFilter() Filter {
	return Filter{Namespace: 'A'}
}

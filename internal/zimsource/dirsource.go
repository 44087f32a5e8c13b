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

package zimsource

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirOpener exposes an unpacked dump directory as an archive. Each
// regular file is one record; the first path element of its relative
// path is the namespace (ZIM URL style, "A/Some_Title.html"), files at
// the top level default to namespace 'A'. Symlinks are reported as
// redirects. Index assignment is the lexicographic rank of the
// relative path, so every Source opened over the same directory agrees
// on indices.
type DirOpener struct {
	Root string
}

type dirEntry struct {
	relPath string
	entry   Entry
}

// dirSource implements Source over a snapshot of the directory listing
// taken at Open time.
type dirSource struct {
	root    string
	entries []dirEntry
	pos     int
}

var _ Opener = (*DirOpener)(nil)

// Open lists the tree and returns an independent Source over it.
func (o *DirOpener) Open(_ context.Context) (Source, error) {
	var paths []string
	err := filepath.WalkDir(o.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(o.Root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", o.Root, err)
	}
	sort.Strings(paths)

	entries := make([]dirEntry, 0, len(paths))
	for i, rel := range paths {
		info, err := os.Lstat(filepath.Join(o.Root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", rel, err)
		}
		ns := byte('A')
		title := rel
		if dir, rest, ok := strings.Cut(rel, "/"); ok && dir != "" {
			ns = dir[0]
			title = rest
		}
		title = strings.TrimSuffix(title, filepath.Ext(title))
		entries = append(entries, dirEntry{
			relPath: rel,
			entry: Entry{
				Index:      uint32(i),
				Title:      title,
				Namespace:  ns,
				IsRedirect: info.Mode()&fs.ModeSymlink != 0,
			},
		})
	}
	return &dirSource{root: o.Root, entries: entries}, nil
}

func (s *dirSource) Next() (Entry, bool, error) {
	if s.pos >= len(s.entries) {
		return Entry{}, false, nil
	}
	e := s.entries[s.pos].entry
	s.pos++
	return e, true, nil
}

func (s *dirSource) Payload(index uint32) ([]byte, error) {
	if int(index) >= len(s.entries) {
		return nil, fmt.Errorf("index %d out of range (have %d entries)", index, len(s.entries))
	}
	rel := s.entries[index].relPath
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("reading record %d (%s): %w", index, rel, err)
	}
	return data, nil
}

func (s *dirSource) Close() error { return nil }

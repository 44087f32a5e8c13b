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
	"regexp"

	"github.com/cardinalhq/zimtodir/internal/zimsource"
)

// DropReason classifies why the scanner rejected an entry. DropNone
// means the entry qualifies for extraction.
type DropReason int

const (
	DropNone DropReason = iota
	DropNamespace
	DropDeleted
	DropRedirect
	DropTitle
)

func (r DropReason) String() string {
	switch r {
	case DropNone:
		return "kept"
	case DropNamespace:
		return "namespace"
	case DropDeleted:
		return "deleted"
	case DropRedirect:
		return "redirect"
	case DropTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Filter holds the rejection predicates for one run. The exclusion
// pattern is explicit state here rather than a package-level table, so
// two runs with different languages never share anything.
type Filter struct {
	// Namespace is the single namespace kept; everything else drops.
	Namespace byte

	// Exclude rejects entries whose title matches, typically the
	// per-language disambiguation-page pattern. Nil disables the check.
	Exclude *regexp.Regexp
}

// Check evaluates the predicates in their fixed priority order:
// namespace, deleted, redirect, title pattern. The first match decides;
// later predicates are not consulted.
func (f Filter) Check(e zimsource.Entry) DropReason {
	switch {
	case e.Namespace != f.Namespace:
		return DropNamespace
	case e.IsDeleted:
		return DropDeleted
	case e.IsRedirect:
		return DropRedirect
	case f.Exclude != nil && f.Exclude.MatchString(e.Title):
		return DropTitle
	default:
		return DropNone
	}
}

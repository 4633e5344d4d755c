/*
 * Copyright (C) 2020-2022, IrineSistiana
 *
 * This file is part of pubsuffix.
 *
 * pubsuffix is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * pubsuffix is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package suffix

import (
	"strings"

	"github.com/armon/go-radix"
	"github.com/bits-and-blooms/bloom/v3"
)

// bloomThreshold mirrors the heuristic used by dashdns-dns-mesh-sidecar's
// matcher: below this many distinct TLDs, a radix lookup alone is
// already fast enough that a Bloom pre-filter isn't worth building.
const bloomThreshold = 10000

// TLDSet (D2) is the valid-TLD set populated during compilation: the
// rightmost label of every well-formed rule. It backs has_valid_tld
// and the diagnostic prefix query prefixed.
//
// Membership is authoritative via a radix tree keyed by the TLD's
// bytes reversed (so that, like the suffix trie itself, related TLDs
// share a prefix in the index). An optional Bloom filter is built
// over large rulesets to reject the common negative case without a
// radix descent; it is advisory only — a filter hit still confirms
// against the radix tree, since a Bloom filter can produce false
// positives but must never produce a false negative.
type TLDSet struct {
	tree  *radix.Tree
	bloom *bloom.BloomFilter
	count int
}

func newTLDSet() *TLDSet {
	return &TLDSet{tree: radix.New()}
}

func (s *TLDSet) add(tld []byte) {
	key := string(reverseBytes(tld))
	if _, had := s.tree.Insert(key, struct{}{}); !had {
		s.count++
	}
}

// finalize builds the Bloom pre-filter once the final TLD count is
// known. Called once, at the end of compilation; the set is
// immutable afterwards, matching the trie's own lifetime.
func (s *TLDSet) finalize() {
	if s.count < bloomThreshold {
		return
	}
	filter := bloom.NewWithEstimates(uint(s.count), 0.01)
	s.tree.Walk(func(key string, _ interface{}) bool {
		filter.AddString(key)
		return false
	})
	s.bloom = filter
}

func (s *TLDSet) contains(tld []byte) bool {
	key := string(reverseBytes(tld))
	if s.bloom != nil && !s.bloom.TestString(key) {
		return false
	}
	_, ok := s.tree.Get(key)
	return ok
}

// prefixed is a diagnostic helper that reports every known TLD
// beginning with prefix. Keys are stored reversed, so this walks the
// whole tree rather than a single radix subtree.
func (s *TLDSet) prefixed(prefix []byte) []string {
	var out []string
	s.tree.Walk(func(key string, _ interface{}) bool {
		tld := string(reverseBytes([]byte(key)))
		if strings.HasPrefix(tld, string(prefix)) {
			out = append(out, tld)
		}
		return false
	})
	return out
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

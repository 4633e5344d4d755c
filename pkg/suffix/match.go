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
	"github.com/IrineSistiana/pubsuffix/pkg/metrics"
	"github.com/IrineSistiana/pubsuffix/pkg/utils"
)

// Matcher implements C2 against an immutable Trie and TLDSet produced
// by a Compiler. A Matcher is safe for concurrent use by any number
// of goroutines: PublicSuffix, BaseDomain and HasValidTLD never
// mutate the underlying Trie or TLDSet.
type Matcher struct {
	trie    *Trie
	tlds    *TLDSet
	tracer  Tracer
	metrics *metrics.Collector
}

// PublicSuffix implements the strict-mode operation: it returns the
// empty string unless a rule fully applies and every label the rule
// demands is present in host.
func (m *Matcher) PublicSuffix(host string) string {
	m.metrics.IncMatchCalls()
	hb, skip, result := m.prepareHost(host, true)
	if skip {
		return result
	}

	start, ok := m.resolveStrict(hb)
	if !ok {
		return ""
	}
	if precedingByteIsMarker(hb, start) {
		return ""
	}
	return utils.BytesToStringUnsafe(hb[start:])
}

// BaseDomain implements the permissive-mode operation: it always
// returns a plausible registrable domain, falling back to heuristic
// behavior (§4.2.4) when strict matching would fail.
func (m *Matcher) BaseDomain(host string) string {
	m.metrics.IncMatchCalls()
	hb, skip, result := m.prepareHost(host, false)
	if skip {
		return result
	}

	res := walkTrie(m.trie.root, hb, m.tracer)
	exception := res.moved && res.node.child(markerException) != nil
	terminal := res.moved && res.node.child(markerTerminal) != nil

	switch {
	case !res.moved, !exception && !terminal:
		start := permissiveFallbackStart(hb)
		return utils.BytesToStringUnsafe(hb[start:])
	case exception:
		start := suffixStart(res.cursor)
		m.tracer.ValidDomain(hb[start:])
		return utils.BytesToStringUnsafe(hb[start:])
	case res.cursor < 0:
		// Rule matched but host lacks the extra label it demands:
		// still return whatever was matched (§4.2.4).
		m.tracer.ValidDomain(hb)
		return utils.BytesToStringUnsafe(hb)
	case res.wildcardUsed:
		start := suffixStart(res.cursor)
		m.tracer.ValidDomain(hb[start:])
		return utils.BytesToStringUnsafe(hb[start:])
	default:
		start := labelStart(hb, res.cursor)
		m.tracer.ValidDomain(hb[start:])
		return utils.BytesToStringUnsafe(hb[start:])
	}
}

// HasValidTLD reports whether the rightmost label of the lowercased
// host is the TLD of at least one compiled rule.
func (m *Matcher) HasValidTLD(host string) bool {
	hb := lowerASCIIBytes([]byte(host))
	if len(hb) == 0 {
		return false
	}
	j := len(hb) - 1
	for j >= 0 && hb[j] != labelSeparator {
		j--
	}
	label := hb[j+1:]
	return m.tlds.contains(label)
}

// resolveStrict runs the trie walk and applies §4.2.3's termination
// rules plus the strict existence requirement on the trailing
// registrable label, returning the start index of the matched suffix
// within hb.
func (m *Matcher) resolveStrict(hb []byte) (start int, ok bool) {
	res := walkTrie(m.trie.root, hb, m.tracer)
	if !res.moved {
		return 0, false
	}
	if res.node.child(markerException) != nil {
		start = suffixStart(res.cursor)
		m.tracer.ValidDomain(hb[start:])
		return start, true
	}
	if res.node.child(markerTerminal) == nil {
		return 0, false
	}
	if res.cursor < 0 {
		// The rule matched but no further label exists to serve as
		// the registrable label the rule demands.
		return 0, false
	}
	if res.wildcardUsed {
		start = suffixStart(res.cursor)
		m.tracer.ValidDomain(hb[start:])
		return start, true
	}
	start = labelStart(hb, res.cursor)
	m.tracer.ValidDomain(hb[start:])
	return start, true
}

// suffixStart returns the index at which the matched suffix begins,
// given a cursor left pointing at the rightmost unconsumed host byte
// (or -1 when the walk consumed the entire host).
func suffixStart(cursor int) int {
	if cursor < 0 {
		return 0
	}
	return cursor + 2
}

// labelStart returns the start index of the label whose rightmost
// byte sits at i, scanning backward to the bounding separator.
func labelStart(hb []byte, i int) int {
	j := i
	for j >= 0 && hb[j] != labelSeparator {
		j--
	}
	return j + 1
}

// precedingByteIsMarker implements §4.2.5's rejection rule: strict
// mode rejects a match whose registrable label boundary is preceded
// by a literal '!' or '*' byte, since the trie's rule grammar
// structurally forbids either from appearing as a real host byte.
func precedingByteIsMarker(hb []byte, start int) bool {
	if start < 2 || hb[start-1] != labelSeparator {
		return false
	}
	b := hb[start-2]
	return b == markerException || b == markerWildcard
}

// permissiveFallbackStart implements §4.2.4's fallback: treat an
// entirely unmatched TLD as a valid one-label suffix, then add one
// more label if the host has one.
func permissiveFallbackStart(hb []byte) int {
	i := skipOneLabel(hb, len(hb)-1)
	if i < 0 {
		return 0
	}
	return labelStart(hb, i)
}

// prepareHost lowercases host and resolves the edge cases decided
// before the trie walk (§4.2.1). skip is true when the caller should
// return result immediately without walking the trie.
func (m *Matcher) prepareHost(host string, strict bool) (hb []byte, skip bool, result string) {
	hb = lowerASCIIBytes([]byte(host))
	if len(hb) == 0 || endsInDot(hb) || hasEmptyLabel(hb) {
		return hb, true, ""
	}
	if isASCIIDigit(hb[len(hb)-1]) {
		if strict {
			return hb, true, ""
		}
		if looksLikeIPv4Literal(hb) {
			return hb, true, utils.BytesToStringUnsafe(hb)
		}
		return hb, true, ""
	}
	return hb, false, ""
}

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

// walkState is the explicit state named in §4.2.7: the three
// observable states the loop in walkTrie cycles through. The loop
// runs until it reaches stateDone or consumes the whole host.
type walkState uint8

const (
	stateExpectLabelByte walkState = iota
	stateAtSeparator
	stateDone
)

// backtrackPoint is the single optional retreat point described in
// the design notes: the node and cursor captured the last time a
// wildcard edge was taken without a following literal match since.
type backtrackPoint struct {
	node         *node
	cursor       int
	wildcardUsed bool
}

// walkResult is what walkTrie hands back to the caller: the node the
// walk ended on, the cursor position (index of the last unconsumed
// byte, or -1 if the walk ran off the start of host), whether any
// wildcard edge was taken en route, and whether the walk moved at all
// (false means the TLD itself never matched).
type walkResult struct {
	node         *node
	cursor       int
	wildcardUsed bool
	moved        bool
}

// walkTrie performs the right-to-left walk of §4.2.2 with the
// single-level backtrack of §4.2.3's third bullet and the design
// notes. host must already be lowercased; the caller is responsible
// for the edge cases decided before the walk (§4.2.1).
func walkTrie(root *node, host []byte, tracer Tracer) walkResult {
	n := root
	i := len(host) - 1
	wildcardUsed := false
	var bt *backtrackPoint
	state := stateExpectLabelByte

	for state != stateDone && i >= 0 {
		b := host[i]
		if b == markerWildcard || b == markerException || b == markerTerminal {
			state = stateDone
			break
		}

		if next, nextI, ok := matchLiteralLabel(n, host, i); ok {
			tracer.MatchedWord(host[labelStart(host, i) : i+1])
			n = next
			i = nextI
			bt = nil // literal match after a wildcard clears the backtrack point
			state = stateAtSeparator
			continue
		}

		if star := n.child(markerWildcard); star != nil {
			bt = &backtrackPoint{node: n, cursor: i, wildcardUsed: wildcardUsed}
			nextI := skipOneLabel(host, i)
			tracer.MatchedWildcard(host[labelStart(host, i) : i+1])
			n = star
			i = nextI
			wildcardUsed = true
			state = stateAtSeparator
			continue
		}

		state = stateDone
	}

	moved := n != root

	if !isValidEnd(n) && bt != nil {
		if isValidEnd(bt.node) {
			tracer.Backtracking()
			n = bt.node
			i = bt.cursor
			wildcardUsed = bt.wildcardUsed
		}
	}

	return walkResult{node: n, cursor: i, wildcardUsed: wildcardUsed, moved: moved}
}

func isValidEnd(n *node) bool {
	return n.child(markerTerminal) != nil || n.child(markerException) != nil
}

// matchLiteralLabel attempts step 1 of §4.2.2 from n starting at
// host[i]: consume label bytes while the trie has edges for them, and
// only call it a success if the scan stopped at an actual label
// boundary — the start of host or a real separator byte — not merely
// because the trie ran out of edges mid-label. A rule label that is a
// trailing substring of a longer host label (rule "tv" against host
// label "mtv") must fail here, not be accepted as if "tv" ended where
// the trie did.
func matchLiteralLabel(n *node, host []byte, i int) (*node, int, bool) {
	j := i
	cur := n
	consumed := false
	atBoundary := false
	for j >= 0 {
		b := host[j]
		if b == labelSeparator {
			atBoundary = true
			break
		}
		if b == markerWildcard || b == markerException || b == markerTerminal {
			// Marker bytes cannot appear literally in a host label.
			break
		}
		c := cur.child(b)
		if c == nil {
			break
		}
		cur = c
		j--
		consumed = true
	}
	if j < 0 {
		atBoundary = true
	}
	if !consumed || !atBoundary {
		// The trie ran out of edges mid-label (e.g. rule "tv" against
		// host label "mtv"): that is not a label boundary, so this is
		// not a valid literal-label match no matter what children cur
		// has.
		return nil, 0, false
	}
	dot := cur.child(labelSeparator)
	if dot == nil {
		return nil, 0, false
	}
	if j >= 0 {
		// host[j] == '.': consume the separator itself.
		return dot, j - 1, true
	}
	return dot, -1, true
}

// skipOneLabel advances a cursor left over exactly one host label and
// its trailing separator (or to the start of host), for the wildcard
// step of §4.2.2.
func skipOneLabel(host []byte, i int) int {
	j := i
	for j >= 0 && host[j] != labelSeparator {
		j--
	}
	if j >= 0 {
		return j - 1
	}
	return -1
}

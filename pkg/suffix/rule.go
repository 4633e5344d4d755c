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

import "fmt"

// maxPositions is the hard cap on label positions per rule (§6.1). A
// rule that would need more is a compile-time error, not truncated
// silently: the source's "truncate and warn" behavior left the
// runtime behavior of the truncated tail undefined, so this
// implementation treats the overflow itself as the reportable error.
const maxPositions = 6

type altKind uint8

const (
	altLiteral altKind = iota
	altWildcard
	altException
)

// alternative is one member of a position's brace group.
type alternative struct {
	kind  altKind
	label []byte // populated only when kind == altLiteral
}

// position is one brace group (or, for position 0, the bare TLD
// token) in a rule, indexed from the right: position 0 is the TLD.
type position struct {
	alts []alternative // nil/empty means "{ }": terminal at this depth
}

// Rule is one fully parsed line of rule grammar (§6.1), not yet
// inserted into a Trie.
type Rule struct {
	positions []position
}

// ParseRule parses a single rule-grammar line, already stripped of
// its trailing comment. Blank lines are reported via errBlankLine so
// callers can skip them without treating them as malformed.
func ParseRule(line string) (Rule, error) {
	tokens := tokenizeRule(line)
	if len(tokens) == 0 {
		return Rule{}, errBlankLine
	}

	tld := lowerASCIIBytes([]byte(tokens[0]))
	if len(tld) == 0 {
		return Rule{}, fmt.Errorf("empty TLD token")
	}
	positions := []position{{alts: []alternative{{kind: altLiteral, label: tld}}}}

	rest := tokens[1:]
	for len(rest) > 0 {
		if rest[0] != "{" {
			return Rule{}, fmt.Errorf("expected '{', got %q", rest[0])
		}
		rest = rest[1:]

		var alts []alternative
		for len(rest) > 0 && rest[0] != "}" {
			alt, err := parseAlternative(rest[0])
			if err != nil {
				return Rule{}, err
			}
			alts = append(alts, alt)
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return Rule{}, fmt.Errorf("unbalanced braces")
		}
		rest = rest[1:] // consume "}"

		positions = append(positions, position{alts: alts})
		if len(positions) > maxPositions {
			return Rule{}, fmt.Errorf("rule has more than %d label positions", maxPositions)
		}
	}
	return Rule{positions: positions}, nil
}

func parseAlternative(tok string) (alternative, error) {
	switch tok {
	case "*":
		return alternative{kind: altWildcard}, nil
	case "!":
		return alternative{kind: altException}, nil
	case "{", "}":
		return alternative{}, fmt.Errorf("unexpected %q inside brace group", tok)
	default:
		return alternative{kind: altLiteral, label: lowerASCIIBytes([]byte(tok))}, nil
	}
}

// tokenizeRule splits a rule line into TLD/brace/alternative tokens,
// treating "{" and "}" as tokens in their own right even when not
// surrounded by whitespace.
func tokenizeRule(line string) []string {
	var tokens []string
	var cur []byte
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			flush()
		case c == '{' || c == '}':
			flush()
			tokens = append(tokens, string(c))
		default:
			cur = append(cur, c)
		}
	}
	flush()
	return tokens
}

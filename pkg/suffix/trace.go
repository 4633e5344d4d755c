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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracer receives step-level diagnostic events from a matcher walk
// (§6.3). Tracer methods must never influence the match result; a
// Matcher calls them purely for observability.
type Tracer interface {
	// MatchedWord is called each time a literal label edge is
	// followed, with the label bytes as consumed from the host.
	MatchedWord(label []byte)
	// MatchedWildcard is called each time a '*' edge is followed,
	// with the host label it stood in for.
	MatchedWildcard(label []byte)
	// Backtracking is called when the walk retreats to the single
	// recorded backtrack point after a dead end past a wildcard.
	Backtracking()
	// ValidDomain is called once a walk concludes with a valid
	// result, with the final matched suffix.
	ValidDomain(suffix []byte)
}

// NopTracer discards every event at zero cost; it is the default
// Tracer when none is supplied, mirroring mlog.Nop()'s role for the
// logger.
type NopTracer struct{}

func (NopTracer) MatchedWord([]byte)     {}
func (NopTracer) MatchedWildcard([]byte) {}
func (NopTracer) Backtracking()          {}
func (NopTracer) ValidDomain([]byte)     {}

// zapTracer logs every event through a *zap.Logger at debug level,
// using the same human-readable prefixes named in §6.3.
type zapTracer struct {
	l *zap.Logger
}

// NewZapTracer returns a Tracer that writes through l. Passing
// mlog.L() wires it into the package-wide logger.
func NewZapTracer(l *zap.Logger) Tracer {
	return zapTracer{l: l}
}

func (t zapTracer) MatchedWord(label []byte) {
	if ce := t.l.Check(zapcore.DebugLevel, "matched word"); ce != nil {
		ce.Write(zap.ByteString("label", label))
	}
}

func (t zapTracer) MatchedWildcard(label []byte) {
	if ce := t.l.Check(zapcore.DebugLevel, "matched wildcard"); ce != nil {
		ce.Write(zap.ByteString("label", label))
	}
}

func (t zapTracer) Backtracking() {
	if ce := t.l.Check(zapcore.DebugLevel, "backtracking"); ce != nil {
		ce.Write()
	}
}

func (t zapTracer) ValidDomain(suffix []byte) {
	if ce := t.l.Check(zapcore.DebugLevel, "VALID DOMAIN"); ce != nil {
		ce.Write(zap.ByteString("suffix", suffix))
	}
}

// DumpTree renders every complete rule path stored in trie as one
// line per rule, TLD-first and dot-joined, with exception rules
// prefixed by '!'. It is a diagnostic routine only (§6.3) and never
// consulted by the matcher.
func DumpTree(trie *Trie) []string {
	var lines []string
	trie.walkPaths(func(labels []string, exception bool) {
		line := strings.Join(labels, ".")
		if exception {
			line = "!" + line
		}
		lines = append(lines, line)
	})
	return lines
}

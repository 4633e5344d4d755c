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
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/IrineSistiana/pubsuffix/mlog"
	"github.com/IrineSistiana/pubsuffix/pkg/metrics"
	"github.com/IrineSistiana/pubsuffix/pkg/utils"
	"go.uber.org/zap"
)

var errBlankLine = errors.New("blank line")

// ErrEmptyRuleset is returned by Compile when no rule lines across
// every supplied source compiled successfully. Per §7, a completely
// empty ruleset is a configuration error, not merely a lenient
// skip-and-continue case.
var ErrEmptyRuleset = errors.New("suffix: empty ruleset after compilation")

// Compiler implements C1: it parses rule text from one or more
// sources, expands brace-group alternatives into Trie insertions, and
// records every rule's rightmost label into a TLDSet.
type Compiler struct {
	Tracer  Tracer
	Metrics *metrics.Collector
}

// NewCompiler returns a Compiler with diagnostics and metrics
// disabled; both can be set on the returned value before Compile is
// called.
func NewCompiler() *Compiler {
	return &Compiler{Tracer: NopTracer{}, Metrics: metrics.Nop()}
}

// Compile reads every source in order (the spec's "two corpora,
// concatenated in compilation order"), parsing each non-blank,
// non-comment line as a rule and merging it into one Trie and
// TLDSet by set union. Malformed lines are accumulated as a joined
// error (pkg/utils.Errors) and skipped; the rest of the ruleset still
// compiles (§4.1, §7). Compile is synchronous and idempotent: calling
// it again with the same input produces an equivalent, independent
// Matcher.
func (c *Compiler) Compile(sources ...io.Reader) (*Matcher, error) {
	if c.Tracer == nil {
		c.Tracer = NopTracer{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Nop()
	}

	trie := newTrie()
	tlds := newTLDSet()
	var errs utils.Errors
	var ruleCount int

	for srcIdx, src := range sources {
		scanner := bufio.NewScanner(src)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := utils.RemoveComment(scanner.Text(), "#")
			rule, err := ParseRule(normalizeWhitespace(line))
			if err != nil {
				if errors.Is(err, errBlankLine) {
					continue
				}
				errs.Append(fmt.Errorf("source #%d line %d: %w", srcIdx, lineNo, err))
				c.Metrics.IncCompileError()
				continue
			}
			insertRule(trie, rule)
			tlds.add(rule.positions[0].alts[0].label)
			ruleCount++
		}
		if err := scanner.Err(); err != nil {
			errs.Append(fmt.Errorf("source #%d: %w", srcIdx, err))
		}
	}

	tlds.finalize()
	joined := errs.Build()
	if joined != nil {
		mlog.L().Warn("suffix: errors while compiling ruleset", zap.Error(joined))
	}

	if ruleCount == 0 {
		c.Metrics.SetLastCompileRules(0)
		return nil, ErrEmptyRuleset
	}

	c.Metrics.SetLastCompileRules(ruleCount)
	m := &Matcher{trie: trie, tlds: tlds, tracer: c.Tracer, metrics: c.Metrics}
	return m, joined
}

// insertRule expands rule's brace-group alternatives into trie by
// recursive descent, per §4.1's insertion algorithm. Position 0 (the
// TLD) is always a single literal alternative.
func insertRule(trie *Trie, rule Rule) {
	insertPositions(trie.root, rule.positions)
}

func insertPositions(dotNode *node, positions []position) {
	if len(positions) == 0 {
		dotNode.ensureChild(markerTerminal)
		return
	}
	pos := positions[0]
	remaining := positions[1:]
	if len(pos.alts) == 0 {
		// "{ }": terminal at this depth, regardless of what (if
		// anything) follows in the textual rule.
		dotNode.ensureChild(markerTerminal)
		return
	}

	for _, alt := range pos.alts {
		switch alt.kind {
		case altException:
			dotNode.ensureChild(markerException)

		case altWildcard:
			next := dotNode.ensureChild(markerWildcard)
			terminateOrContinue(next, remaining)

		case altLiteral:
			cur := dotNode
			for i := len(alt.label) - 1; i >= 0; i-- {
				cur = cur.ensureChild(alt.label[i])
			}
			next := cur.ensureChild(labelSeparator)
			terminateOrContinue(next, remaining)
		}
	}
}

func terminateOrContinue(next *node, remaining []position) {
	if len(remaining) == 0 {
		next.ensureChild(markerTerminal)
		return
	}
	insertPositions(next, remaining)
}

// normalizeWhitespace collapses runs of whitespace to single spaces
// and trims the line, per §6.1's "whitespace within a line is
// normalized to single spaces".
func normalizeWhitespace(s string) string {
	var b []byte
	inSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			if !inSpace && len(b) > 0 {
				b = append(b, ' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b = append(b, c)
	}
	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return string(b)
}

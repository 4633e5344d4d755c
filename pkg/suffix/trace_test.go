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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopTracerDiscardsEverything(t *testing.T) {
	require.NotPanics(t, func() {
		var tr Tracer = NopTracer{}
		tr.MatchedWord([]byte("foo"))
		tr.MatchedWildcard([]byte("bar"))
		tr.Backtracking()
		tr.ValidDomain([]byte("foo.com"))
	})
}

func TestZapTracerLogsValidDomain(t *testing.T) {
	r := require.New(t)
	core, logs := observer.New(zap.DebugLevel)
	tr := NewZapTracer(zap.New(core))

	m, err := NewCompiler().Compile(strings.NewReader(scenarioRules))
	r.NoError(err)
	m.tracer = tr

	got := m.PublicSuffix("www.foo.com")
	r.Equal("foo.com", got)

	var sawValidDomain bool
	for _, entry := range logs.All() {
		if entry.Message == "VALID DOMAIN" {
			sawValidDomain = true
		}
	}
	r.True(sawValidDomain, "expected a VALID DOMAIN log entry")
}

func TestDumpTreeEmptyTrie(t *testing.T) {
	lines := DumpTree(newTrie())
	require.Empty(t, lines)
}

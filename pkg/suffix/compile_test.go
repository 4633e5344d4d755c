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
)

func TestCompileSkipsMalformedLinesButKeepsGoing(t *testing.T) {
	r := require.New(t)
	src := "com\nfoo { unbalanced\nnet\n"
	m, err := NewCompiler().Compile(strings.NewReader(src))
	r.Error(err) // malformed-line diagnostics are still surfaced...
	r.NotNil(m)  // ...but the well-formed rules still compiled.

	r.Equal("foo.com", m.PublicSuffix("www.foo.com"))
	r.Equal("foo.net", m.PublicSuffix("www.foo.net"))
}

func TestCompileRejectsTooManyPositions(t *testing.T) {
	_, err := ParseRule("a { b } { c } { d } { e } { f } { g }")
	require.Error(t, err)
}

func TestCompileAcceptsMaxPositions(t *testing.T) {
	_, err := ParseRule("a { b } { c } { d } { e } { f }")
	require.NoError(t, err)
}

func TestCompileEmptyGroupIsTerminal(t *testing.T) {
	r := require.New(t)
	// "{ }" terminates the rule at that depth regardless of any
	// alternatives that would otherwise have followed textually.
	m, err := NewCompiler().Compile(strings.NewReader("us { ak } { }"))
	r.NoError(err)
	r.Equal("test.ak.us", m.PublicSuffix("test.ak.us"))
}

func TestCompileBlankAndCommentLinesAreIgnored(t *testing.T) {
	r := require.New(t)
	src := "# a comment\n\ncom # trailing comment\n   \n"
	m, err := NewCompiler().Compile(strings.NewReader(src))
	r.NoError(err)
	r.Equal("foo.com", m.PublicSuffix("www.foo.com"))
}

func TestCompileMergesMultipleSources(t *testing.T) {
	r := require.New(t)
	m, err := NewCompiler().Compile(strings.NewReader("com\n"), strings.NewReader("net\n"))
	r.NoError(err)
	r.Equal("foo.com", m.PublicSuffix("www.foo.com"))
	r.Equal("foo.net", m.PublicSuffix("www.foo.net"))
}

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a   {  b }", "a { b }"},
		{"  leading and trailing  ", "leading and trailing"},
		{"a\t{\tb\t}", "a { b }"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeWhitespace(c.in); got != c.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseRuleRejectsMismatchedBraces(t *testing.T) {
	_, err := ParseRule("com { ak")
	require.Error(t, err)
}

func TestParseRuleRejectsStrayBrace(t *testing.T) {
	_, err := ParseRule("com } ak")
	require.Error(t, err)
}

func TestParseRuleBlankLine(t *testing.T) {
	_, err := ParseRule("   ")
	require.ErrorIs(t, err, errBlankLine)
}

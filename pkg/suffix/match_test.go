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

// scenarioRules is a small rule corpus built to exercise exactly the
// scenarios in the concrete-scenarios table (§8), not the real public
// suffix list.
const scenarioRules = `
com
us { ak } { k12 }
us { ak }
us { ca } { * } { ci }
us { ca } { k12 } { pvt }
jp { kyoto } { ide }
jp { kobe } { city } { ! }
ck { * }
ck { www } { ! }
uk { co }
bd { * }
`

func mustCompile(t *testing.T) *Matcher {
	t.Helper()
	r := require.New(t)
	m, err := NewCompiler().Compile(strings.NewReader(scenarioRules))
	r.NoError(err)
	r.NotNil(m)
	return m
}

func TestMatcherConcreteScenarios(t *testing.T) {
	m := mustCompile(t)

	cases := []struct {
		host       string
		wantPublic string
		wantBase   string
	}{
		{"www.foo.com", "foo.com", "foo.com"},
		{"www.smms.pvt.k12.ca.us", "smms.pvt.k12.ca.us", "smms.pvt.k12.ca.us"},
		{"www.whitbread.co.uk", "whitbread.co.uk", "whitbread.co.uk"},
		{"www.foo.zz", "", "foo.zz"},
		{"com.bd", "", "com.bd"},
		{"www.ck", "www.ck", "www.ck"},
		{"b.ide.kyoto.jp", "b.ide.kyoto.jp", "b.ide.kyoto.jp"},
		{"city.kobe.jp", "city.kobe.jp", "city.kobe.jp"},
		{"127.0.0.1", "", "127.0.0.1"},
		{"test.ak.us", "test.ak.us", "test.ak.us"},
		{"test.k12.ak.us", "test.k12.ak.us", "test.k12.ak.us"},
		{"sunset.ci.sunnyvale.ca.us", "ci.sunnyvale.ca.us", "ci.sunnyvale.ca.us"},
	}

	for _, c := range cases {
		if got := m.PublicSuffix(c.host); got != c.wantPublic {
			t.Errorf("PublicSuffix(%q) = %q, want %q", c.host, got, c.wantPublic)
		}
		if got := m.BaseDomain(c.host); got != c.wantBase {
			t.Errorf("BaseDomain(%q) = %q, want %q", c.host, got, c.wantBase)
		}
	}
}

func TestWildcardSemantics(t *testing.T) {
	r := require.New(t)
	m, err := NewCompiler().Compile(strings.NewReader("t { * }"))
	r.NoError(err)

	require.Equal(t, "y.t", m.PublicSuffix("x.y.t"))
	require.Equal(t, "", m.PublicSuffix("y.t"))
}

func TestExceptionSemantics(t *testing.T) {
	r := require.New(t)
	m, err := NewCompiler().Compile(strings.NewReader("t { * }\nt { e } { ! }"))
	r.NoError(err)

	// The exception rule's own depth is always valid, with no
	// extra-label requirement (§4.2.3's exception-end bullet).
	require.Equal(t, "e.t", m.PublicSuffix("e.t"))
	// A label the exception doesn't name still falls under the plain
	// wildcard rule, which does require the extra label to exist.
	require.Equal(t, "", m.PublicSuffix("x.t"))
	require.Equal(t, "x.t", m.PublicSuffix("z.x.t"))
}

func TestLowercaseIdempotence(t *testing.T) {
	m := mustCompile(t)
	for _, h := range []string{"WWW.FOO.COM", "Www.Foo.Com", "www.foo.com"} {
		require.Equal(t, m.PublicSuffix("www.foo.com"), m.PublicSuffix(h))
		require.Equal(t, m.BaseDomain("www.foo.com"), m.BaseDomain(h))
	}
}

func TestEmptyAndTrailingDot(t *testing.T) {
	m := mustCompile(t)
	require.Equal(t, "", m.PublicSuffix(""))
	require.Equal(t, "", m.BaseDomain(""))
	require.Equal(t, "", m.PublicSuffix("foo.com."))
	require.Equal(t, "", m.BaseDomain("foo.com."))
}

func TestRejectionRule(t *testing.T) {
	mustCompile(t)
	// A host that structurally embeds a marker byte immediately to
	// the left of an otherwise-matching suffix must be rejected in
	// strict mode (§4.2.5); it can never occur from real rule data,
	// so we exercise it through a directly-built trie instead.
	trie := newTrie()
	insertRule(trie, mustParse(t, "com"))
	tlds := newTLDSet()
	tlds.add([]byte("com"))
	tlds.finalize()
	mm := &Matcher{trie: trie, tlds: tlds, tracer: NopTracer{}, metrics: nil}

	require.Equal(t, "", mm.PublicSuffix("*.foo.com"))
	require.Equal(t, "", mm.PublicSuffix("!.foo.com"))
}

// TestLiteralLabelRequiresBoundary guards against treating a rule
// label that happens to be a trailing substring of a longer,
// unregistered host label as a match. "tv" must not match inside
// "mtv" just because the trie runs out of "tv" edges at the same
// point a label boundary would have appeared.
func TestLiteralLabelRequiresBoundary(t *testing.T) {
	m, err := NewCompiler().Compile(strings.NewReader("tv\n"))
	require.NoError(t, err)

	require.Equal(t, "", m.PublicSuffix("example.mtv"))
	require.Equal(t, "example.mtv", m.BaseDomain("example.mtv"))
	require.Equal(t, "example.tv", m.PublicSuffix("example.tv"))
}

// TestEmptyLabelIsRejected guards against the walk's cursor landing
// directly on a separator byte when host contains a zero-length
// label, which previously produced a leading-dot result such as
// ".com" instead of being rejected as malformed input.
func TestEmptyLabelIsRejected(t *testing.T) {
	m := mustCompile(t)

	require.Equal(t, "", m.PublicSuffix("a..com"))
	require.Equal(t, "", m.BaseDomain("a..com"))
	require.Equal(t, "", m.PublicSuffix(".com"))
	require.Equal(t, "", m.BaseDomain(".com"))
}

func mustParse(t *testing.T, line string) Rule {
	t.Helper()
	r, err := ParseRule(line)
	require.NoError(t, err)
	return r
}

func TestHasValidTLD(t *testing.T) {
	m := mustCompile(t)
	require.True(t, m.HasValidTLD("anything.com"))
	require.True(t, m.HasValidTLD("COM"))
	require.False(t, m.HasValidTLD("anything.invalidtld"))
}

func TestRobustnessNoCrash(t *testing.T) {
	m := mustCompile(t)
	inputs := []string{
		"\x00\x00.com",
		string([]byte{0xff, 0xfe, '.', 'c', 'o', 'm'}),
		strings.Repeat("a.", 10000) + "com",
	}
	for _, in := range inputs {
		_ = m.PublicSuffix(in)
		_ = m.BaseDomain(in)
		_ = m.HasValidTLD(in)
	}
}

func TestCompileIdempotent(t *testing.T) {
	r := require.New(t)
	c := NewCompiler()
	m1, err := c.Compile(strings.NewReader(scenarioRules))
	r.NoError(err)
	m2, err := c.Compile(strings.NewReader(scenarioRules))
	r.NoError(err)

	require.Equal(t, m1.PublicSuffix("www.foo.com"), m2.PublicSuffix("www.foo.com"))
}

func TestEmptyRulesetIsAnError(t *testing.T) {
	_, err := NewCompiler().Compile(strings.NewReader("# nothing but comments\n\n"))
	require.ErrorIs(t, err, ErrEmptyRuleset)
}

func TestSuffixStartAndLabelStart(t *testing.T) {
	require.Equal(t, 0, suffixStart(-1))
	require.Equal(t, 2, suffixStart(0))
	require.Equal(t, 7, suffixStart(5))

	hb := []byte("www.foo.com")
	require.Equal(t, 4, labelStart(hb, 6))
	require.Equal(t, 0, labelStart(hb, 2))
}

func TestConcurrentMatchIsSafe(t *testing.T) {
	m := mustCompile(t)
	const n = 64
	done := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- m.PublicSuffix("www.foo.com")
		}()
	}
	for i := 0; i < n; i++ {
		require.Equal(t, "foo.com", <-done)
	}
}

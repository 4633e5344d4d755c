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

// Package suffix compiles a public-suffix-list-style ruleset into a
// byte-indexed, label-reversed trie and matches hostnames against it.
//
// The trie (Trie) is built once by a Compiler from rule text and is
// immutable afterwards; a Matcher wraps a compiled Trie plus a TLDSet
// and answers PublicSuffix, BaseDomain and HasValidTLD queries by
// walking the trie right-to-left over the host's bytes. OnceMatcher
// provides the process-wide one-shot compile-then-share pattern.
package suffix

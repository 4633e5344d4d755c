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

// lowerASCIIBytes returns a lowercased copy of b. Only ASCII bytes
// are folded; non-ASCII bytes (pre-decoded IDN U-label bytes) pass
// through untouched, per §3's "Label" definition.
func lowerASCIIBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// looksLikeIPv4Literal reports whether host is entirely digits and
// dots and no longer than the longest possible dotted-quad, per
// §4.2.1's permissive IPv4 carve-out.
func looksLikeIPv4Literal(host []byte) bool {
	if len(host) == 0 || len(host) > 15 {
		return false
	}
	for _, c := range host {
		if !isASCIIDigit(c) && c != '.' {
			return false
		}
	}
	return true
}

// endsInDot reports whether host's last byte is the label separator.
func endsInDot(host []byte) bool {
	return len(host) > 0 && host[len(host)-1] == labelSeparator
}

// hasEmptyLabel reports whether host contains a zero-length label —
// a leading separator, or two consecutive separators anywhere — which
// the walk's cursor arithmetic has no boundary to land on.
func hasEmptyLabel(host []byte) bool {
	if len(host) > 0 && host[0] == labelSeparator {
		return true
	}
	for i := 1; i < len(host); i++ {
		if host[i] == labelSeparator && host[i-1] == labelSeparator {
			return true
		}
	}
	return false
}

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

import "sync"

// OnceMatcher realizes §5's bootstrap guard: the first caller to
// Get triggers build and every concurrent first-caller blocks on the
// same compile; afterwards Get is a lock-free read of the already
// built Matcher. If build fails, every subsequent Get call returns
// the same error (matching "failure during compile is fatal for that
// process; no partial trie is exposed").
type OnceMatcher struct {
	once  sync.Once
	build func() (*Matcher, error)

	m   *Matcher
	err error
}

// NewOnceMatcher returns an OnceMatcher that calls build exactly once
// across the lifetime of the process, however many goroutines call
// Get concurrently.
func NewOnceMatcher(build func() (*Matcher, error)) *OnceMatcher {
	return &OnceMatcher{build: build}
}

// Get returns the compiled Matcher, compiling it on the first call.
func (o *OnceMatcher) Get() (*Matcher, error) {
	o.once.Do(func() {
		o.m, o.err = o.build()
	})
	return o.m, o.err
}

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

// Package metrics collects Prometheus counters and gauges for a
// suffix.Compiler/suffix.Matcher pair, grounded on the teacher's
// plugin/executable/metrics_collector Collector pattern.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes compile-outcome and match-call-volume metrics.
// A nil-safe Nop Collector is used wherever no registry is supplied,
// so that callers never have to guard against a nil *Collector.
type Collector struct {
	compileErrTotal  prometheus.Counter
	lastCompileRules prometheus.Gauge
	matchTotal       prometheus.Counter
}

// NewCollector builds a Collector and registers it, optionally under
// nameSpace, against reg.
func NewCollector(reg prometheus.Registerer, nameSpace string) *Collector {
	c := &Collector{
		compileErrTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "compile_errors_total",
			Help: "The total number of malformed rule lines skipped during compilation",
		}),
		lastCompileRules: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "last_compile_rules",
			Help: "The number of rules successfully compiled into the trie on the most recent compile",
		}),
		matchTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match_calls_total",
			Help: "The total number of PublicSuffix/BaseDomain calls served",
		}),
	}

	var register func(...prometheus.Collector)
	if len(nameSpace) > 0 {
		register = prometheus.WrapRegistererWithPrefix(nameSpace, reg).MustRegister
	} else {
		register = reg.MustRegister
	}
	register(c.compileErrTotal, c.lastCompileRules, c.matchTotal)
	return c
}

// Nop returns a Collector that is never registered with any registry,
// so its observations are recorded but never exported; it is the
// default when the caller supplies none.
func Nop() *Collector {
	return &Collector{
		compileErrTotal:  prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_compile_errors_total"}),
		lastCompileRules: prometheus.NewGauge(prometheus.GaugeOpts{Name: "nop_last_compile_rules"}),
		matchTotal:       prometheus.NewCounter(prometheus.CounterOpts{Name: "nop_match_calls_total"}),
	}
}

func (c *Collector) IncCompileError() {
	if c == nil {
		return
	}
	c.compileErrTotal.Inc()
}

func (c *Collector) SetLastCompileRules(n int) {
	if c == nil {
		return
	}
	c.lastCompileRules.Set(float64(n))
}

func (c *Collector) IncMatchCalls() {
	if c == nil {
		return
	}
	c.matchTotal.Inc()
}

/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exposes discovery counters as Prometheus collectors.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rfind/apis"
)

const namespace = "rfind"

// Metrics holds the discovery counters.
type Metrics struct {
	scans        *prometheus.CounterVec
	filtered     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// New creates the counters and registers them with reg when reg is non-nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "scanned_types_total",
			Help:      "Number of types whose declared members were scanned, by member kind.",
		}, []string{"kind"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "discovery",
			Name:      "filtered_types_total",
			Help:      "Number of types skipped by the path filter, by member kind.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Number of discovery cache lookups, by cache and result.",
		}, []string{"cache", "result"}),
	}
	if reg != nil {
		for _, c := range m.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Collectors returns every collector owned by m.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.scans, m.filtered, m.cacheLookups}
}

// ObserveScan counts one scanned type.
func (m *Metrics) ObserveScan(kind apis.MemberKind) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(kind.String()).Inc()
}

// ObserveFiltered counts one type rejected by the path filter.
func (m *Metrics) ObserveFiltered(kind apis.MemberKind) {
	if m == nil {
		return
	}
	m.filtered.WithLabelValues(kind.String()).Inc()
}

// ObserveCacheLookup counts one lookup in the named cache.
func (m *Metrics) ObserveCacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

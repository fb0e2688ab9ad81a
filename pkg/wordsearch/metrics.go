/*
	Copyright 2023 Google Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package wordsearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by instrumented
// dictionaries.  Each instrumented dictionary reports under its own
// "dictionary" label.
type Metrics struct {
	queries  *prometheus.CounterVec
	matches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the query collectors and registers them with reg.  A nil
// reg leaves them unregistered, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordsearch",
			Name:      "queries_total",
			Help:      "Number of prefix queries answered.",
		}, []string{"dictionary"}),
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordsearch",
			Name:      "matches_total",
			Help:      "Number of words returned by prefix queries.",
		}, []string{"dictionary"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wordsearch",
			Name:      "query_duration_seconds",
			Help:      "Latency of prefix queries.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}, []string{"dictionary"}),
	}
}

// Instrument wraps dict so that every FindMatchingWords call is counted and
// timed under the provided name.
func (m *Metrics) Instrument(name string, dict Dictionary) Dictionary {
	return &instrumented{
		Dictionary: dict,
		queries:    m.queries.WithLabelValues(name),
		matches:    m.matches.WithLabelValues(name),
		duration:   m.duration.WithLabelValues(name),
	}
}

type instrumented struct {
	Dictionary
	queries  prometheus.Counter
	matches  prometheus.Counter
	duration prometheus.Observer
}

func (i *instrumented) FindMatchingWords(pattern string) []string {
	start := time.Now()
	ret := i.Dictionary.FindMatchingWords(pattern)
	i.duration.Observe(time.Since(start).Seconds())
	i.queries.Inc()
	i.matches.Add(float64(len(ret)))
	return ret
}

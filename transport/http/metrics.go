// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package http

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the transport's Prometheus collectors. A nil registerer
// still produces working collectors, they just are not exported anywhere.
type metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	poolCreations    prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restcall_http_requests_total",
				Help: "Total HTTP requests sent, by service and status code.",
			},
			[]string{"service", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restcall_http_request_duration_seconds",
				Help:    "HTTP request latency, by service.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "restcall_http_requests_in_flight",
				Help: "HTTP requests currently in flight.",
			},
		),
		poolCreations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "restcall_http_client_pool_creations_total",
				Help: "Pooled HTTP clients created, one per distinct base configuration.",
			},
		),
	}
	if registerer != nil {
		registerer.MustRegister(
			m.requestsTotal,
			m.requestDuration,
			m.requestsInFlight,
			m.poolCreations,
		)
	}
	return m
}

// observe records one completed exchange. A zero status means the request
// never produced a response.
func (m *metrics) observe(service string, status int, elapsed time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(service, label).Inc()
	m.requestDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

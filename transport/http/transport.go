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

// Package http provides the HTTP outbound used by contract clients.
package http

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type transportOptions struct {
	keepAlive             time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	idleConnTimeout       time.Duration
	disableKeepAlives     bool
	disableCompression    bool
	responseHeaderTimeout time.Duration
	connTimeout           time.Duration
	tracer                opentracing.Tracer
	logger                *zap.Logger
	registerer            prometheus.Registerer
	buildClient           func(*transportOptions) *http.Client
}

var defaultTransportOptions = transportOptions{
	keepAlive:           30 * time.Second,
	maxIdleConnsPerHost: 2,
	connTimeout:         500 * time.Millisecond,
	idleConnTimeout:     15 * time.Minute,
	buildClient:         buildHTTPClient,
}

func newTransportOptions() transportOptions {
	options := defaultTransportOptions
	options.tracer = opentracing.GlobalTracer()
	return options
}

// TransportOption customizes the behavior of an HTTP transport.
type TransportOption func(*transportOptions)

// KeepAlive specifies the keep-alive period for all outbound connections.
// Defaults to 30 seconds.
func KeepAlive(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.keepAlive = t
	}
}

// MaxIdleConns controls the maximum number of idle (keep-alive) connections
// across all hosts. Zero means no limit.
func MaxIdleConns(i int) TransportOption {
	return func(options *transportOptions) {
		options.maxIdleConns = i
	}
}

// MaxIdleConnsPerHost specifies the number of idle (keep-alive) HTTP
// connections to keep per host.
func MaxIdleConnsPerHost(i int) TransportOption {
	return func(options *transportOptions) {
		options.maxIdleConnsPerHost = i
	}
}

// IdleConnTimeout is the maximum amount of time an idle (keep-alive)
// connection will remain idle before closing itself.
// Defaults to 15 minutes.
func IdleConnTimeout(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.idleConnTimeout = t
	}
}

// DisableKeepAlives prevents re-use of TCP connections between different HTTP
// requests.
func DisableKeepAlives() TransportOption {
	return func(options *transportOptions) {
		options.disableKeepAlives = true
	}
}

// DisableCompression if true prevents the Transport from requesting
// compression with an "Accept-Encoding: gzip" request header.
func DisableCompression() TransportOption {
	return func(options *transportOptions) {
		options.disableCompression = true
	}
}

// ResponseHeaderTimeout if non-zero specifies the amount of time to wait for
// a server's response headers after fully writing the request.
func ResponseHeaderTimeout(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.responseHeaderTimeout = t
	}
}

// ConnTimeout is the time that the transport will wait for a connection
// attempt. Defaults to 500ms.
func ConnTimeout(d time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.connTimeout = d
	}
}

// Tracer configures a tracer for the transport.
func Tracer(tracer opentracing.Tracer) TransportOption {
	return func(options *transportOptions) {
		options.tracer = tracer
	}
}

// Logger sets a logger to use for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) TransportOption {
	return func(options *transportOptions) {
		options.logger = logger
	}
}

// Metrics registers the transport's Prometheus collectors with the given
// registerer.
//
// The default is to not record any metrics.
func Metrics(registerer prometheus.Registerer) TransportOption {
	return func(options *transportOptions) {
		options.registerer = registerer
	}
}

// NewTransport creates a new HTTP transport to be shared by outbounds.
//
// The transport keeps one pooled http.Client per distinct effective base
// configuration it sees, so calls with the same destination and timeout
// profile reuse connections.
func NewTransport(opts ...TransportOption) *Transport {
	options := newTransportOptions()
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		options: options,
		clients: make(map[string]*http.Client),
		tracer:  options.tracer,
		logger:  logger,
		metrics: newMetrics(options.registerer),
	}
}

func buildHTTPClient(options *transportOptions) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   options.connTimeout,
				KeepAlive: options.keepAlive,
			}).DialContext,
			MaxIdleConns:          options.maxIdleConns,
			MaxIdleConnsPerHost:   options.maxIdleConnsPerHost,
			IdleConnTimeout:       options.idleConnTimeout,
			DisableKeepAlives:     options.disableKeepAlives,
			DisableCompression:    options.disableCompression,
			ResponseHeaderTimeout: options.responseHeaderTimeout,
		},
	}
}

// Transport keeps a pool of shared HTTP clients and the observability
// collaborators used by the outbounds built from it.
type Transport struct {
	options transportOptions

	mu      sync.RWMutex
	clients map[string]*http.Client

	tracer  opentracing.Tracer
	logger  *zap.Logger
	metrics *metrics
}

// poolKey identifies the client pool for one effective base configuration.
// Requests that agree on service, scheme, host, and timeout share a client.
func poolKey(service, scheme, host string, timeout time.Duration) string {
	return fmt.Sprintf("%s|%s://%s|%s", service, strings.ToLower(scheme), strings.ToLower(host), timeout)
}

// client returns the pooled http.Client for the given key, creating it on
// first use. Creation is double-checked so concurrent first calls for the
// same key share a single client.
func (t *Transport) client(key string) *http.Client {
	t.mu.RLock()
	client, ok := t.clients[key]
	t.mu.RUnlock()
	if ok {
		return client
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if client, ok := t.clients[key]; ok {
		return client
	}
	client = t.options.buildClient(&t.options)
	t.clients[key] = client
	t.metrics.poolCreations.Inc()
	t.logger.Debug("created pooled http client", zap.String("pool", key))
	return client
}

// poolSize returns the number of distinct pooled clients.
func (t *Transport) poolSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}

// CloseIdleConnections drops idle connections from every pooled client.
func (t *Transport) CloseIdleConnections() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, client := range t.clients {
		client.CloseIdleConnections()
	}
}

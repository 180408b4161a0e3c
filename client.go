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

package restcall

import (
	"time"

	"go.uber.org/restcall/api/transport"
	"go.uber.org/restcall/internal/interpolate"
	"go.uber.org/restcall/restcallerrors"
	"go.uber.org/zap"
)

// Client carries the service-scoped configuration and the outbound used by
// every proxy registered against it. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	service  string
	outbound transport.UnaryOutbound
	global   scope
	scoped   scope
	base     interpolate.String
	logger   *zap.Logger
}

type clientOptions struct {
	global scope
	scoped scope
	logger *zap.Logger
}

// ClientOption customizes the behavior of a Client.
type ClientOption func(*clientOptions)

// BaseURL sets the base address template for the service. The template may
// contain {placeholder} tokens resolved from configuration variables or
// path-bound call arguments.
func BaseURL(template string) ClientOption {
	return func(o *clientOptions) { o.scoped.baseURL = template }
}

// Header adds a service-scoped default header.
func Header(k, v string) ClientOption {
	return func(o *clientOptions) { o.scoped.setHeader(k, v) }
}

// Cookie adds a service-scoped default cookie.
func Cookie(k, v string) ClientOption {
	return func(o *clientOptions) { o.scoped.setCookie(k, v) }
}

// Variable supplies a service-scoped value for a {placeholder} in the URL
// template.
func Variable(k, v string) ClientOption {
	return func(o *clientOptions) { o.scoped.setVariable(k, v) }
}

// Timeout sets the service-scoped default timeout. Zero leaves timeout
// enforcement entirely to the transport.
func Timeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.scoped.timeout = d }
}

// UseCodec sets the service-scoped codec.
//
// The default is JSONCodec.
func UseCodec(codec Codec) ClientOption {
	return func(o *clientOptions) { o.scoped.codec = codec }
}

// WithDefaults installs the global configuration layer, the least specific
// of the four scopes.
func WithDefaults(d Defaults) ClientOption {
	return func(o *clientOptions) { o.global = d.scope() }
}

// Logger sets a logger to use for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = logger }
}

// NewClient builds a Client for the named service around the given
// outbound.
//
// The base address template must be supplied here or through the global
// defaults; it is parsed and validated eagerly so malformed templates fail
// before any contract is registered.
func NewClient(service string, outbound transport.UnaryOutbound, opts ...ClientOption) (*Client, error) {
	if service == "" {
		return nil, restcallerrors.ContractDefinitionErrorf("a service name is required")
	}
	if outbound == nil {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"service %q: an outbound is required", service)
	}

	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	baseURL := options.scoped.baseURL
	if baseURL == "" {
		baseURL = options.global.baseURL
	}
	if baseURL == "" {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"service %q: a base address template is required", service)
	}
	base, err := interpolate.Parse(baseURL)
	if err != nil {
		return nil, restcallerrors.ContractDefinitionErrorf(
			"service %q: invalid base address template: %v", service, err)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		service:  service,
		outbound: outbound,
		global:   options.global,
		scoped:   options.scoped,
		base:     base,
		logger:   logger,
	}, nil
}

// Service returns the name of the remote service this client talks to.
func (c *Client) Service() string {
	return c.service
}

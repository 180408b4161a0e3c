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
	"context"
	"time"
)

// CallOption defines per-call overrides. Contract methods have fixed
// signatures, so options ride on the context:
//
//	ctx = restcall.WithCallOptions(ctx,
//		restcall.WithHeader("X-Request-Id", id))
//	customer, err := svc.Get(ctx, 7)
//
// These form the most specific configuration scope and win over method,
// service, and global settings.
type CallOption struct{ apply func(*callOptions) }

type callOptions struct {
	scope           scope
	responseHeaders *map[string]string
}

// WithHeader adds a header to the request. Header keys are case
// insensitive. If multiple scopes set the same normalized header name, the
// call-site entry wins.
func WithHeader(k, v string) CallOption {
	return CallOption{func(o *callOptions) { o.scope.setHeader(k, v) }}
}

// WithCookie adds a cookie to the request.
func WithCookie(k, v string) CallOption {
	return CallOption{func(o *callOptions) { o.scope.setCookie(k, v) }}
}

// WithVariable supplies a value for a {placeholder} in the URL template.
func WithVariable(k, v string) CallOption {
	return CallOption{func(o *callOptions) { o.scope.setVariable(k, v) }}
}

// WithTimeout overrides the timeout for this call.
func WithTimeout(d time.Duration) CallOption {
	return CallOption{func(o *callOptions) { o.scope.timeout = d }}
}

// WithCodec overrides the codec for this call.
func WithCodec(codec Codec) CallOption {
	return CallOption{func(o *callOptions) { o.scope.codec = codec }}
}

// ResponseHeaders specifies that headers received in response to this call
// should replace the given map.
//
// Note that the map is replaced completely. Entries it had before making
// the call will not be available afterwards.
func ResponseHeaders(h *map[string]string) CallOption {
	return CallOption{func(o *callOptions) { o.responseHeaders = h }}
}

type callOptionsKey struct{}

// WithCallOptions returns a context carrying the given per-call overrides.
// Later calls replace earlier option sets rather than accumulating.
func WithCallOptions(ctx context.Context, opts ...CallOption) context.Context {
	var o callOptions
	for _, opt := range opts {
		opt.apply(&o)
	}
	return context.WithValue(ctx, callOptionsKey{}, &o)
}

func callOptionsFromContext(ctx context.Context) *callOptions {
	if o, ok := ctx.Value(callOptionsKey{}).(*callOptions); ok {
		return o
	}
	return &callOptions{}
}

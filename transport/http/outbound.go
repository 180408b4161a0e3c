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
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/atomic"
	"go.uber.org/restcall/api/transport"
	"go.uber.org/restcall/restcallerrors"
	"go.uber.org/zap"
)

// this ensures that outbound implements the transport interface
var _ transport.UnaryOutbound = (*Outbound)(nil)

// NewOutbound builds an HTTP outbound backed by this transport's client
// pool.
func (t *Transport) NewOutbound() *Outbound {
	return &Outbound{transport: t}
}

// Outbound sends requests over HTTP. It carries no destination of its own;
// every request arrives with a fully resolved absolute URL.
//
// It is safe for concurrent use.
type Outbound struct {
	transport *Transport
	running   atomic.Bool
}

// Start marks the outbound as ready to send.
func (o *Outbound) Start() error {
	o.running.Store(true)
	return nil
}

// Stop marks the outbound as stopped and drops idle connections.
func (o *Outbound) Stop() error {
	o.running.Store(false)
	o.transport.CloseIdleConnections()
	return nil
}

// IsRunning returns whether the outbound is started.
func (o *Outbound) IsRunning() bool {
	return o.running.Load()
}

// Call performs one HTTP exchange. The response is returned for any status
// the server produces; status interpretation belongs to the caller.
func (o *Outbound) Call(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if !o.running.Load() {
		return nil, restcallerrors.TransportErrorf(
			"%s::%s: outbound is not started", req.Service, req.Procedure)
	}
	if err := transport.ValidateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	hreq, err := o.createRequest(ctx, req)
	if err != nil {
		return nil, restcallerrors.Wrap(restcallerrors.CodeTransport, err)
	}
	span := o.withOpentracingSpan(ctx, hreq, req, start)
	defer span.Finish()

	key := poolKey(req.Service, hreq.URL.Scheme, hreq.URL.Host, req.Timeout)
	client := o.transport.client(key)

	o.transport.metrics.requestsInFlight.Inc()
	hres, err := client.Do(hreq)
	o.transport.metrics.requestsInFlight.Dec()

	if err != nil {
		ext.Error.Set(span, true)
		o.transport.metrics.observe(req.Service, 0, time.Since(start))
		return nil, o.mapTransportError(ctx, req, start, err)
	}
	defer hres.Body.Close()

	span.SetTag("http.status_code", hres.StatusCode)
	o.transport.metrics.observe(req.Service, hres.StatusCode, time.Since(start))

	body, err := io.ReadAll(hres.Body)
	if err != nil {
		ext.Error.Set(span, true)
		return nil, restcallerrors.Wrap(restcallerrors.CodeTransport, err)
	}

	headers := transport.NewHeadersWithCapacity(len(hres.Header))
	for k, vs := range hres.Header {
		if len(vs) > 0 {
			headers = headers.With(k, vs[0])
		}
	}

	o.transport.logger.Debug("http exchange complete",
		zap.String("service", req.Service),
		zap.String("procedure", req.Procedure),
		zap.Int("status", hres.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &transport.Response{
		StatusCode: hres.StatusCode,
		Headers:    headers,
		Body:       body,
	}, nil
}

func (o *Outbound) createRequest(ctx context.Context, req *transport.Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers.Items() {
		hreq.Header.Set(k, v)
	}
	if req.ContentType != "" {
		hreq.Header.Set("Content-Type", req.ContentType)
	}
	for k, v := range req.Cookies {
		hreq.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	return hreq, nil
}

func (o *Outbound) withOpentracingSpan(ctx context.Context, hreq *http.Request, req *transport.Request, start time.Time) opentracing.Span {
	tracer := o.transport.tracer
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}
	span := tracer.StartSpan(
		req.Procedure,
		opentracing.StartTime(start),
		opentracing.ChildOf(parent),
		opentracing.Tags{
			"rpc.service":   req.Service,
			"rpc.transport": "http",
		},
	)
	ext.PeerService.Set(span, req.Service)
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, hreq.URL.String())
	ext.HTTPMethod.Set(span, req.Method)

	_ = tracer.Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(hreq.Header),
	)
	return span
}

// mapTransportError classifies a client.Do failure. Context expiry owns the
// cancelled and timeout shapes; everything else is a transport fault.
func (o *Outbound) mapTransportError(ctx context.Context, req *transport.Request, start time.Time, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return restcallerrors.CancelledErrorf(
			"%s::%s: call cancelled after %v", req.Service, req.Procedure, time.Since(start))
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return restcallerrors.Newf(restcallerrors.CodeTransport,
			"%s::%s: timed out after %v", req.Service, req.Procedure, time.Since(start)).
			WithTimeout()
	}
	return restcallerrors.Wrap(restcallerrors.CodeTransport, err)
}

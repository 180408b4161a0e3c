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
	"reflect"

	"go.uber.org/restcall/api/transport"
	"go.uber.org/restcall/contract"
	"go.uber.org/restcall/restcallerrors"
	"go.uber.org/zap"
)

// callState tracks one invocation through the pipeline. States only move
// forward; a failure at any stage jumps to stateFailed and skips the
// remaining stages.
type callState int

const (
	stateReceived callState = iota
	stateConfigResolved
	stateRequestBuilt
	stateSent
	stateResponseReceived
	stateCompleted
	stateFailed
)

// Stage names attached to errors so callers can tell which pipeline step
// failed.
const (
	stageReceived         = "received"
	stageConfigResolved   = "config-resolved"
	stageRequestBuilt     = "request-built"
	stageSent             = "sent"
	stageResponseReceived = "response-received"
)

// invocation is the per-call pipeline state. Each call builds its own; no
// state is shared between concurrent invocations.
type invocation struct {
	client *Client
	method *contract.Method
	state  callState
	sent   bool
}

func (i *invocation) advance(next callState) {
	if next <= i.state {
		panic("restcall: invocation state must only move forward")
	}
	i.state = next
}

// send performs the single transport exchange of this invocation. The
// invocation enters stateSent before the outbound runs and leaves it only
// when a response arrives.
func (i *invocation) send(ctx context.Context, outbound transport.UnaryOutbound, req *transport.Request) (*transport.Response, error) {
	if i.sent {
		panic("restcall: more than one request sent for a single invocation")
	}
	i.sent = true
	i.advance(stateSent)
	res, err := outbound.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	i.advance(stateResponseReceived)
	return res, nil
}

func (i *invocation) fail(stage string, err error) error {
	i.state = stateFailed
	status := restcallerrors.FromError(err).WithStage(stage)
	i.client.logger.Debug("call failed",
		zap.String("service", i.client.service),
		zap.String("procedure", i.method.Name),
		zap.String("stage", stage),
		zap.Error(status),
	)
	return status
}

// call runs the full pipeline for one invocation. The returned value is
// valid only for non-void shapes.
func (c *Client) call(ctx context.Context, method *contract.Method, args []reflect.Value) (reflect.Value, error) {
	inv := &invocation{client: c, method: method}

	if err := ctx.Err(); err != nil {
		return reflect.Value{}, inv.fail(stageReceived,
			restcallerrors.CancelledErrorf("call cancelled before dispatch: %v", err))
	}

	opts := callOptionsFromContext(ctx)
	cfg := resolveConfig(c.global, c.scoped, methodScope(method), opts.scope)
	inv.advance(stateConfigResolved)

	bound, err := method.Bind(args)
	if err != nil {
		return reflect.Value{}, inv.fail(stageRequestBuilt, err)
	}
	req, err := synthesize(c.service, c.base, method, cfg, bound)
	if err != nil {
		return reflect.Value{}, inv.fail(stageRequestBuilt, err)
	}
	inv.advance(stateRequestBuilt)

	// A cancellation that lands before the transport stage short-circuits
	// without sending anything.
	if err := ctx.Err(); err != nil {
		return reflect.Value{}, inv.fail(stageSent,
			restcallerrors.CancelledErrorf("call cancelled before send: %v", err))
	}

	res, err := inv.send(ctx, c.outbound, req)
	if err != nil {
		return reflect.Value{}, inv.fail(stageSent, err)
	}

	if opts.responseHeaders != nil {
		headers := make(map[string]string, res.Headers.Len())
		for k, v := range res.Headers.Items() {
			headers[k] = v
		}
		*opts.responseHeaders = headers
	}

	value, err := mapResponse(cfg.Codec, res, method)
	if err != nil {
		return reflect.Value{}, inv.fail(stageResponseReceived, err)
	}
	inv.advance(stateCompleted)
	return value, nil
}

// methodScope lifts a method's declarative settings into a configuration
// scope, between the service and call scopes.
func methodScope(m *contract.Method) scope {
	return scope{
		timeout: m.Timeout,
		headers: m.Headers,
	}
}

// mapResponse interprets the response status and body against the method's
// declared result shape.
func mapResponse(codec Codec, res *transport.Response, m *contract.Method) (reflect.Value, error) {
	switch res.Class() {
	case transport.ClassSuccess:
		if m.Shape == contract.ShapeVoid {
			return reflect.Value{}, nil
		}
		if len(res.Body) == 0 {
			return reflect.Value{}, restcallerrors.Newf(restcallerrors.CodeDeserialization,
				"%s: empty body for declared result %v", m.Name, m.Result).
				WithHTTPStatus(res.StatusCode, nil)
		}
		out := reflect.New(m.Result)
		if err := codec.Unmarshal(res.Body, out.Interface()); err != nil {
			return reflect.Value{}, restcallerrors.Wrap(restcallerrors.CodeDeserialization, err).
				WithBody(res.Body)
		}
		return out.Elem(), nil

	case transport.ClassClientError:
		return reflect.Value{}, restcallerrors.Newf(restcallerrors.CodeClientRequest,
			"%s: the service rejected the request", m.Name).
			WithHTTPStatus(res.StatusCode, res.Body)

	case transport.ClassServerError:
		return reflect.Value{}, restcallerrors.Newf(restcallerrors.CodeServiceFailure,
			"%s: the service failed", m.Name).
			WithHTTPStatus(res.StatusCode, res.Body)

	default:
		// 1xx and 3xx are not part of the contract surface; the transport
		// follows redirects itself, so anything left over is a service
		// fault.
		return reflect.Value{}, restcallerrors.Newf(restcallerrors.CodeServiceFailure,
			"%s: unexpected status %d", m.Name, res.StatusCode).
			WithHTTPStatus(res.StatusCode, res.Body)
	}
}

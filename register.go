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

	"go.uber.org/restcall/contract"
	"go.uber.org/zap"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Register builds a callable proxy for the contract type T against the given
// client. T must be a struct whose exported func fields carry contract tags;
// see the package documentation for the tag syntax.
//
// Registration validates the whole contract eagerly. A contract with any
// invalid method fails as a unit and no proxy is returned.
//
// The returned proxy is safe for concurrent use.
func Register[T any](c *Client) (*T, error) {
	desc, err := contract.Describe(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	proxy := new(T)
	v := reflect.ValueOf(proxy).Elem()
	for _, method := range desc.Methods {
		method := method
		fn := reflect.MakeFunc(method.FuncType(), func(args []reflect.Value) []reflect.Value {
			ctx, _ := args[0].Interface().(context.Context)
			if ctx == nil {
				ctx = context.Background()
			}
			out, err := c.call(ctx, method, args[1:])
			return results(method, out, err)
		})
		v.Field(method.FieldIndex()).Set(fn)
	}

	c.logger.Debug("registered contract",
		zap.String("service", c.service),
		zap.String("contract", desc.Name),
		zap.Int("methods", len(desc.Methods)),
	)
	return proxy, nil
}

// MustRegister is like Register except it panics on failure. Use for
// contracts declared at program start.
func MustRegister[T any](c *Client) *T {
	proxy, err := Register[T](c)
	if err != nil {
		panic(err.Error())
	}
	return proxy
}

// results packs a pipeline outcome into the return values of the method's
// declared signature.
func results(m *contract.Method, out reflect.Value, err error) []reflect.Value {
	errValue := reflect.Zero(_errType)
	if err != nil {
		errValue = reflect.New(_errType).Elem()
		errValue.Set(reflect.ValueOf(err))
	}
	if m.Shape == contract.ShapeVoid {
		return []reflect.Value{errValue}
	}
	result := out
	if !result.IsValid() {
		result = reflect.Zero(m.Result)
	}
	return []reflect.Value{result, errValue}
}

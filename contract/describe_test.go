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

package contract

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/restcall/restcallerrors"
)

type customer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type customerService struct {
	Get    func(ctx context.Context, marketID int) (customer, error)    `call:"GET customers/{marketId}" args:"marketId"`
	List   func(ctx context.Context, verbose bool) ([]customer, error)  `call:"GET customers" args:"verbose"`
	Create func(ctx context.Context, c customer) (customer, error)      `call:"POST customers" args:"customer"`
	Delete func(ctx context.Context, marketID int) error                `call:"DELETE customers/{marketId}" args:"marketId"`
	Audit  func(ctx context.Context, token string, c customer) error    `call:"POST customers/audit" args:"token,customer" bind:"token=header" headers:"Accept=application/json" timeout:"5s"`
	Tenant func(ctx context.Context, sid string, c customer) error      `call:"PUT {region}/customers" args:"sid,customer" bind:"sid=cookie"`
}

func TestDescribe(t *testing.T) {
	d, err := Describe(reflect.TypeOf(customerService{}))
	require.NoError(t, err)

	assert.Equal(t, "customerService", d.Name)
	require.Len(t, d.Methods, 6)

	get, ok := d.Method("Get")
	require.True(t, ok)
	assert.Equal(t, GET, get.Verb)
	assert.Equal(t, "customers/{marketId}", get.PathTemplate)
	assert.Equal(t, ShapeEntity, get.Shape)
	require.Len(t, get.Params, 1)
	assert.Equal(t, Param{
		Name:     "marketId",
		Kind:     KindPath,
		Position: 0,
		Type:     reflect.TypeOf(0),
	}, get.Params[0])
	assert.Empty(t, get.ConfigVariables)

	list, ok := d.Method("List")
	require.True(t, ok)
	assert.Equal(t, ShapeSequence, list.Shape)
	assert.Equal(t, KindQuery, list.Params[0].Kind, "simple GET param defaults to query")

	create, ok := d.Method("Create")
	require.True(t, ok)
	assert.Equal(t, KindBody, create.Params[0].Kind, "complex POST param defaults to body")
	assert.False(t, create.Params[0].Explicit)

	del, ok := d.Method("Delete")
	require.True(t, ok)
	assert.Equal(t, ShapeVoid, del.Shape)
	assert.Nil(t, del.Result)

	audit, ok := d.Method("Audit")
	require.True(t, ok)
	assert.Equal(t, KindHeader, audit.Params[0].Kind)
	assert.True(t, audit.Params[0].Explicit)
	assert.Equal(t, KindBody, audit.Params[1].Kind)
	assert.Equal(t, map[string]string{"Accept": "application/json"}, audit.Headers)
	assert.Equal(t, 5*time.Second, audit.Timeout)

	tenant, ok := d.Method("Tenant")
	require.True(t, ok)
	assert.Equal(t, []string{"region"}, tenant.ConfigVariables,
		"placeholder without a matching parameter resolves from configuration")
}

func TestDescribeIdempotent(t *testing.T) {
	first, err := Describe(reflect.TypeOf(customerService{}))
	require.NoError(t, err)
	second, err := Describe(reflect.TypeOf(&customerService{}))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDescribeConcurrentFirstUse(t *testing.T) {
	type racedService struct {
		Ping func(ctx context.Context) error `call:"GET ping"`
	}

	descriptors := make([]*Descriptor, 8)
	var wg sync.WaitGroup
	for i := range descriptors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := Describe(reflect.TypeOf(racedService{}))
			assert.NoError(t, err)
			descriptors[i] = d
		}(i)
	}
	wg.Wait()

	for _, d := range descriptors[1:] {
		assert.Same(t, descriptors[0], d, "all callers must share one descriptor")
	}
}

func TestDescribeFailures(t *testing.T) {
	type notAFunc struct {
		Name string `call:"GET x"`
	}
	type missingCallTag struct {
		Get func(ctx context.Context) error
	}
	type unknownVerb struct {
		Get func(ctx context.Context) error `call:"FETCH x"`
	}
	type noContext struct {
		Get func(id int) error `call:"GET x" args:"id"`
	}
	type badResults struct {
		Get func(ctx context.Context) (int, int, error) `call:"GET x"`
	}
	type twoBodies struct {
		Put func(ctx context.Context, a, b customer) error `call:"PUT x" args:"a,b" bind:"a=body,b=body"`
	}
	type argCountMismatch struct {
		Get func(ctx context.Context, id int) error `call:"GET x"`
	}
	type duplicateArgs struct {
		Get func(ctx context.Context, a, b int) error `call:"GET x" args:"id,id"`
	}
	type bindUnknownArg struct {
		Get func(ctx context.Context, id int) error `call:"GET x" args:"id" bind:"nope=query"`
	}
	type bindUnknownKind struct {
		Get func(ctx context.Context, id int) error `call:"GET x" args:"id" bind:"id=fragment"`
	}
	type pathWithoutPlaceholder struct {
		Get func(ctx context.Context, id int) error `call:"GET x" args:"id" bind:"id=path"`
	}
	type complexOnGet struct {
		Get func(ctx context.Context, c customer) error `call:"GET x" args:"c"`
	}
	type complexHeader struct {
		Get func(ctx context.Context, c customer) error `call:"GET x" args:"c" bind:"c=header"`
	}
	type badTemplate struct {
		Get func(ctx context.Context) error `call:"GET x/{unterminated"`
	}
	type badTimeout struct {
		Get func(ctx context.Context) error `call:"GET x" timeout:"fast"`
	}
	type unexportedMethod struct {
		Get  func(ctx context.Context) error `call:"GET x"`
		ping func(ctx context.Context) error `call:"GET ping"`
	}
	type empty struct{}

	tests := []struct {
		name string
		give reflect.Type
	}{
		{name: "field is not a func", give: reflect.TypeOf(notAFunc{})},
		{name: "missing call tag", give: reflect.TypeOf(missingCallTag{})},
		{name: "unknown verb", give: reflect.TypeOf(unknownVerb{})},
		{name: "missing context parameter", give: reflect.TypeOf(noContext{})},
		{name: "too many results", give: reflect.TypeOf(badResults{})},
		{name: "two body bindings", give: reflect.TypeOf(twoBodies{})},
		{name: "args count mismatch", give: reflect.TypeOf(argCountMismatch{})},
		{name: "duplicate arg names", give: reflect.TypeOf(duplicateArgs{})},
		{name: "bind references unknown arg", give: reflect.TypeOf(bindUnknownArg{})},
		{name: "bind references unknown kind", give: reflect.TypeOf(bindUnknownKind{})},
		{name: "path bind without placeholder", give: reflect.TypeOf(pathWithoutPlaceholder{})},
		{name: "complex unannotated param on GET", give: reflect.TypeOf(complexOnGet{})},
		{name: "complex param on header", give: reflect.TypeOf(complexHeader{})},
		{name: "unterminated placeholder", give: reflect.TypeOf(badTemplate{})},
		{name: "bad timeout tag", give: reflect.TypeOf(badTimeout{})},
		{name: "unexported method", give: reflect.TypeOf(unexportedMethod{})},
		{name: "no methods", give: reflect.TypeOf(empty{})},
		{name: "not a struct", give: reflect.TypeOf(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Describe(tt.give)
			require.Error(t, err)
			assert.True(t, restcallerrors.IsContractDefinition(err),
				"want contract definition error, got %v", err)
		})
	}
}

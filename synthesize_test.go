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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/restcall/contract"
	"go.uber.org/restcall/internal/interpolate"
	"go.uber.org/restcall/restcallerrors"
)

type synthAPI struct {
	Find   func(ctx context.Context, name string) error                 `call:"GET items/{name}" args:"name"`
	Search func(ctx context.Context, q string, limit int) error         `call:"GET search?sort=asc" args:"q,limit"`
	Ping   func(ctx context.Context) error                              `call:"GET ping"`
}

func synthMethod(t *testing.T, name string, args ...interface{}) (*contract.Method, *contract.Bound) {
	t.Helper()
	desc, err := contract.Describe(reflect.TypeOf(synthAPI{}))
	require.NoError(t, err)
	m, ok := desc.Method(name)
	require.True(t, ok)

	values := make([]reflect.Value, len(args))
	for i, a := range args {
		values[i] = reflect.ValueOf(a)
	}
	bound, err := m.Bind(values)
	require.NoError(t, err)
	return m, bound
}

func TestSynthesizeEscapesPathValues(t *testing.T) {
	m, bound := synthMethod(t, "Find", "a b/c")
	base := interpolate.MustParse("https://svc.example/api")

	req, err := synthesize("items", base, m, resolveConfig(scope{}), bound)
	require.NoError(t, err)
	assert.Equal(t, "https://svc.example/api/items/a%20b%2Fc", req.URL.String(),
		"argument values are escaped before they land in a path segment")
}

func TestSynthesizeJoinsSlashes(t *testing.T) {
	m, bound := synthMethod(t, "Ping")

	for _, baseURL := range []string{"https://svc.example/api", "https://svc.example/api/"} {
		base := interpolate.MustParse(baseURL)
		req, err := synthesize("items", base, m, resolveConfig(scope{}), bound)
		require.NoError(t, err)
		assert.Equal(t, "https://svc.example/api/ping", req.URL.String())
	}
}

func TestSynthesizeKeepsTemplateQuery(t *testing.T) {
	m, bound := synthMethod(t, "Search", "widget", 10)
	base := interpolate.MustParse("https://svc.example/api")

	req, err := synthesize("items", base, m, resolveConfig(scope{}), bound)
	require.NoError(t, err)
	assert.Equal(t, "sort=asc&q=widget&limit=10", req.URL.RawQuery,
		"bound entries append after the template's own query")
}

func TestSynthesizeRejectsRelativeURL(t *testing.T) {
	m, bound := synthMethod(t, "Ping")
	base := interpolate.MustParse("svc.example/api")

	_, err := synthesize("items", base, m, resolveConfig(scope{}), bound)
	require.Error(t, err)
	assert.True(t, restcallerrors.IsUnsupportedBinding(err))
	assert.ErrorContains(t, err, "not absolute")
}

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

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHeaders(t *testing.T) {
	tests := []struct {
		headers  map[string]string
		matches  map[string]string
		failures []string
	}{
		{
			nil,
			map[string]string{},
			[]string{"foo"},
		},
		{
			map[string]string{
				"Foo": "Bar",
				"Baz": "qux",
			},
			map[string]string{
				"foo": "Bar",
				"Foo": "Bar",
				"FOO": "Bar",
				"baz": "qux",
				"Baz": "qux",
				"BaZ": "qux",
			},
			[]string{"bar"},
		},
		{
			map[string]string{
				"foo": "bar",
				"baz": "",
			},
			map[string]string{
				"foo": "bar",
				"baz": "",
				"Baz": "",
			},
			[]string{"qux"},
		},
	}

	for _, tt := range tests {
		headers := HeadersFromMap(tt.headers)
		for k, v := range tt.matches {
			vg, ok := headers.Get(k)
			assert.True(t, ok, "expected true for %q", k)
			assert.Equal(t, v, vg, "value mismatch for %q", k)
		}
		for _, k := range tt.failures {
			v, ok := headers.Get(k)
			assert.False(t, ok, "expected false for %q", k)
			assert.Equal(t, "", v, "expected empty string for %q", k)
		}
	}
}

func TestHeadersCanonicalCasing(t *testing.T) {
	headers := HeadersFromMap(map[string]string{
		"x-request-id": "r-42",
		"ACCEPT":       "application/json",
	})

	assert.Equal(t, map[string]string{
		"X-Request-Id": "r-42",
		"Accept":       "application/json",
	}, headers.Items(), "stored keys use MIME-canonical casing")
	assert.Equal(t, "X-Request-Id", CanonicalizeHeaderKey("x-REQUEST-id"))
}

func TestHeadersUpdate(t *testing.T) {
	base := HeadersFromMap(map[string]string{
		"accept":  "application/json",
		"x-token": "service",
	})
	merged := base.Update(HeadersFromMap(map[string]string{
		"X-Token": "call",
		"X-Extra": "1",
	}))

	v, ok := merged.Get("x-token")
	assert.True(t, ok)
	assert.Equal(t, "call", v, "more specific entry must win")

	v, ok = merged.Get("accept")
	assert.True(t, ok)
	assert.Equal(t, "application/json", v)

	_, ok = merged.Get("x-extra")
	assert.True(t, ok)
	assert.Equal(t, 3, merged.Len())
}

func TestHeadersDel(t *testing.T) {
	headers := NewHeaders().With("Foo", "bar")
	headers.Del("FOO")
	_, ok := headers.Get("foo")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	headers.Del("never-set")
	assert.Equal(t, 0, headers.Len())
}

func TestResponseClass(t *testing.T) {
	tests := []struct {
		status int
		want   Class
	}{
		{status: 200, want: ClassSuccess},
		{status: 204, want: ClassSuccess},
		{status: 301, want: ClassUnknown},
		{status: 404, want: ClassClientError},
		{status: 500, want: ClassServerError},
		{status: 503, want: ClassServerError},
		{status: 100, want: ClassUnknown},
	}

	for _, tt := range tests {
		res := &Response{StatusCode: tt.status}
		assert.Equal(t, tt.want, res.Class(), "status %d", tt.status)
	}
}

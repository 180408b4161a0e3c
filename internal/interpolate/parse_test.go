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

package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		give string
		want String
	}{
		{
			give: "customers",
			want: String{literal("customers")},
		},
		{
			give: "customers/{marketId}",
			want: String{
				literal("customers/"),
				variable{Name: "marketId"},
			},
		},
		{
			give: "{env}.example.com/api",
			want: String{
				variable{Name: "env"},
				literal(".example.com/api"),
			},
		},
		{
			give: "a/{b}/c/{d-e_2}",
			want: String{
				literal("a/"),
				variable{Name: "b"},
				literal("/c/"),
				variable{Name: "d-e_2"},
			},
		},
		{
			give: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		got, err := Parse(tt.give)
		require.NoError(t, err, "failed to parse %q", tt.give)
		assert.Equal(t, tt.want, got, "parse of %q", tt.give)
	}
}

func TestParseFailure(t *testing.T) {
	tests := []string{
		"customers/{marketId",
		"customers/{}",
		"customers/{market id}",
		"customers/marketId}",
		"{a}}b",
	}

	for _, give := range tests {
		_, err := Parse(give)
		assert.Error(t, err, "expected parse of %q to fail", give)
	}
}

func TestRender(t *testing.T) {
	values := map[string]string{
		"marketId": "7",
		"env":      "prod",
	}
	resolve := func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}

	tests := []struct {
		give string
		want string
	}{
		{give: "customers/{marketId}", want: "customers/7"},
		{give: "https://{env}.example.com", want: "https://prod.example.com"},
		{give: "no-placeholders", want: "no-placeholders"},
	}

	for _, tt := range tests {
		s := MustParse(tt.give)
		got, err := s.Render(resolve)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenderMissingVariable(t *testing.T) {
	s := MustParse("customers/{marketId}")
	_, err := s.Render(func(string) (string, bool) { return "", false })
	require.Error(t, err)
	assert.True(t, IsUnknownVariable(err))
	assert.Contains(t, err.Error(), "marketId")
}

func TestRenderSinglePass(t *testing.T) {
	// A substituted value containing placeholder syntax must be emitted
	// verbatim, never re-expanded.
	s := MustParse("v/{a}")
	got, err := s.Render(func(name string) (string, bool) {
		if name == "a" {
			return "{b}", true
		}
		return "", false
	})
	require.NoError(t, err)
	assert.Equal(t, "v/{b}", got)
}

func TestVariables(t *testing.T) {
	s := MustParse("{env}/x/{id}/y/{id}")
	assert.Equal(t, []string{"env", "id"}, s.Variables())
	assert.Empty(t, MustParse("static").Variables())
}

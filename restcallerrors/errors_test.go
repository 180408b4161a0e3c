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

package restcallerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewfOKCodeIsNil(t *testing.T) {
	assert.Nil(t, Newf(CodeOK, "nothing wrong"))
}

func TestNewf(t *testing.T) {
	status := Newf(CodeClientRequest, "rejected by %s", "svc")
	require.NotNil(t, status)
	assert.Equal(t, CodeClientRequest, status.Code())
	assert.Equal(t, "rejected by svc", status.Message())
}

func TestWithStageDoesNotMutate(t *testing.T) {
	status := Newf(CodeTransport, "boom")
	staged := status.WithStage("sent")
	assert.Empty(t, status.Stage())
	assert.Equal(t, "sent", staged.Stage())
	assert.Equal(t, CodeTransport, staged.Code())
}

func TestWithHTTPStatus(t *testing.T) {
	status := Newf(CodeServiceFailure, "boom").WithHTTPStatus(503, []byte("oops"))
	assert.Equal(t, 503, status.HTTPStatus())
	assert.Equal(t, []byte("oops"), status.Body())
}

func TestWithTimeout(t *testing.T) {
	err := Newf(CodeTransport, "deadline").WithTimeout()
	assert.True(t, IsTimeout(err))
	assert.True(t, IsTransport(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	status := Wrap(CodeTransport, cause)
	require.NotNil(t, status)
	assert.Equal(t, CodeTransport, status.Code())
	assert.True(t, errors.Is(status, cause))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(CodeTransport, nil))
}

func TestFromError(t *testing.T) {
	tests := []struct {
		give     error
		wantCode Code
	}{
		{give: nil, wantCode: CodeOK},
		{give: Newf(CodeDeserialization, "bad body"), wantCode: CodeDeserialization},
		{give: fmt.Errorf("wrapped: %w", Newf(CodeCancelled, "stop")), wantCode: CodeCancelled},
		{give: errors.New("plain"), wantCode: CodeTransport},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantCode, FromError(tt.give).Code(), "give %v", tt.give)
	}
}

func TestIsStatus(t *testing.T) {
	assert.False(t, IsStatus(nil))
	assert.False(t, IsStatus(errors.New("plain")))
	assert.True(t, IsStatus(Newf(CodeClientRequest, "nope")))
	assert.True(t, IsStatus(fmt.Errorf("outer: %w", Newf(CodeClientRequest, "nope"))))
}

func TestErrorString(t *testing.T) {
	err := Newf(CodeClientRequest, "not found").
		WithStage("response-received").
		WithHTTPStatus(404, []byte(`{"error":"not found"}`))
	assert.Equal(
		t,
		"code:client-request stage:response-received status:404 message:not found",
		err.Error(),
	)
}

func TestCodeStringRoundTrip(t *testing.T) {
	for code, name := range _codeToString {
		assert.Equal(t, name, code.String())
		var parsed Code
		require.NoError(t, parsed.UnmarshalText([]byte(name)))
		assert.Equal(t, code, parsed)
	}
	assert.Equal(t, "100", Code(100).String())
}

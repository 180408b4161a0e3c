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

package restcallconfig

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/restcall"
	"go.uber.org/restcall/api/transport"
	"go.uber.org/restcall/api/transport/transporttest"
)

const testDocument = `
global:
  timeout: 10s
  headers:
    Accept: application/json
services:
  customers:
    baseURL: https://customers.example/api
    timeout: 5s
    headers:
      X-Env: prod
    variables:
      region: us-east
  fleet:
    baseURL: https://fleet.example
`

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML(strings.NewReader(testDocument))
	require.NoError(t, err)

	assert.Equal(t, Duration(10*time.Second), cfg.Global.Timeout)
	assert.Equal(t, "application/json", cfg.Global.Headers["Accept"])

	customers, ok := cfg.Services["customers"]
	require.True(t, ok)
	assert.Equal(t, "https://customers.example/api", customers.BaseURL)
	assert.Equal(t, Duration(5*time.Second), customers.Timeout)
	assert.Equal(t, "us-east", customers.Variables["region"])
}

func TestParseYAMLFailures(t *testing.T) {
	tests := []struct {
		msg     string
		give    string
		wantErr string
	}{
		{
			msg:     "unknown field",
			give:    "global:\n  basUrl: https://oops.example\n",
			wantErr: "not found",
		},
		{
			msg:     "bad duration",
			give:    "global:\n  timeout: ten seconds\n",
			wantErr: "invalid duration",
		},
		{
			msg:     "not yaml",
			give:    "{{{",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.give))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RESTCALLTEST_BASE_URL", "https://override.example")
	t.Setenv("RESTCALLTEST_TIMEOUT", "30s")

	cfg, err := ParseYAML(strings.NewReader(testDocument))
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyEnv("RESTCALLTEST"))

	assert.Equal(t, "https://override.example", cfg.Global.BaseURL)
	assert.Equal(t, Duration(30*time.Second), cfg.Global.Timeout)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg, err := ParseYAML(strings.NewReader(testDocument))
	require.NoError(t, err)

	out := &transporttest.FakeOutbound{
		Handler: func(_ context.Context, req *transport.Request) (*transport.Response, error) {
			return &transport.Response{StatusCode: 204}, nil
		},
	}
	client, err := cfg.NewClient("customers", out)
	require.NoError(t, err)

	type pingAPI struct {
		Ping func(ctx context.Context) error `call:"GET {region}/ping"`
	}
	svc, err := restcall.Register[pingAPI](client)
	require.NoError(t, err)
	require.NoError(t, svc.Ping(context.Background()))

	req := out.Requests()[0]
	assert.Equal(t, "https://customers.example/api/us-east/ping", req.URL.String())
	accept, ok := req.Headers.Get("Accept")
	require.True(t, ok)
	assert.Equal(t, "application/json", accept, "global headers apply")
	env, ok := req.Headers.Get("X-Env")
	require.True(t, ok)
	assert.Equal(t, "prod", env, "service headers apply")
	assert.Equal(t, 5*time.Second, req.Timeout, "service timeout wins over global")
}

func TestNewClientUnknownServiceUsesGlobals(t *testing.T) {
	cfg, err := ParseYAML(strings.NewReader(testDocument))
	require.NoError(t, err)

	_, err = cfg.NewClient("unknown", &transporttest.FakeOutbound{})
	require.Error(t, err, "no base URL anywhere means no client")
}

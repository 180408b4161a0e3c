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

// Package restcallconfig builds restcall clients from YAML configuration,
// with environment variable overrides.
//
// A configuration document has a global section and one section per
// service:
//
//	global:
//	  timeout: 10s
//	  headers:
//	    Accept: application/json
//	services:
//	  customers:
//	    baseURL: https://customers.example/api
//	    timeout: 5s
//	    variables:
//	      region: us-east
package restcallconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/restcall"
	"go.uber.org/restcall/api/transport"
	yaml "gopkg.in/yaml.v2"
)

// Duration unmarshals YAML duration strings like "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Scope is one configuration layer of a YAML document, either the global
// section or a per-service section.
type Scope struct {
	BaseURL   string            `yaml:"baseURL"`
	Timeout   Duration          `yaml:"timeout"`
	Headers   map[string]string `yaml:"headers"`
	Cookies   map[string]string `yaml:"cookies"`
	Variables map[string]string `yaml:"variables"`
}

// Config is a parsed configuration document.
type Config struct {
	Global   Scope            `yaml:"global"`
	Services map[string]Scope `yaml:"services"`
}

// ParseYAML parses a configuration document. Unknown fields are an error so
// typos surface at load time.
func ParseYAML(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %v", err)
	}
	return &cfg, nil
}

// LoadFile reads and parses the configuration file at the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(bytes.NewReader(data))
}

// envOverrides are global settings read from the environment. With the
// prefix "RESTCALL" these are RESTCALL_BASE_URL and RESTCALL_TIMEOUT.
type envOverrides struct {
	BaseURL string        `envconfig:"BASE_URL"`
	Timeout time.Duration `envconfig:"TIMEOUT"`
}

// ApplyEnv overlays environment variables with the given prefix on the
// global scope. Set variables win over the document.
func (c *Config) ApplyEnv(prefix string) error {
	var env envOverrides
	if err := envconfig.Process(prefix, &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %v", err)
	}
	if env.BaseURL != "" {
		c.Global.BaseURL = env.BaseURL
	}
	if env.Timeout != 0 {
		c.Global.Timeout = Duration(env.Timeout)
	}
	return nil
}

// ClientOptions translates the document into options for one service's
// client: the global section becomes the defaults layer and the service
// section, if present, becomes the service layer.
func (c *Config) ClientOptions(service string) []restcall.ClientOption {
	opts := []restcall.ClientOption{
		restcall.WithDefaults(restcall.Defaults{
			BaseURL:   c.Global.BaseURL,
			Timeout:   time.Duration(c.Global.Timeout),
			Headers:   c.Global.Headers,
			Cookies:   c.Global.Cookies,
			Variables: c.Global.Variables,
		}),
	}

	scope, ok := c.Services[service]
	if !ok {
		return opts
	}
	if scope.BaseURL != "" {
		opts = append(opts, restcall.BaseURL(scope.BaseURL))
	}
	if scope.Timeout != 0 {
		opts = append(opts, restcall.Timeout(time.Duration(scope.Timeout)))
	}
	for k, v := range scope.Headers {
		opts = append(opts, restcall.Header(k, v))
	}
	for k, v := range scope.Cookies {
		opts = append(opts, restcall.Cookie(k, v))
	}
	for k, v := range scope.Variables {
		opts = append(opts, restcall.Variable(k, v))
	}
	return opts
}

// NewClient builds a client for the named service from this configuration.
func (c *Config) NewClient(service string, outbound transport.UnaryOutbound, opts ...restcall.ClientOption) (*restcall.Client, error) {
	return restcall.NewClient(service, outbound, append(c.ClientOptions(service), opts...)...)
}

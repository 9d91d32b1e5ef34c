/*
 * Copyright 2024 Routs Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

type Option func(*Options) *Options

type Options struct {
	Name          string `yaml:"name"`
	Network       string `yaml:"network"`
	Addr          string `yaml:"addr"`
	CertFile      string `yaml:"certFile"`
	KeyFile       string `yaml:"keyFile"`
	EnableMetrics bool   `yaml:"enableMetrics"`
}

func NewOptions(opts []Option) *Options {
	options := &Options{}
	options.setDefaults()

	for _, opt := range opts {
		options = opt(options)
	}
	return options
}

func (o *Options) setDefaults() {
	if o.Name == "" {
		o.Name = "default"
	}
	if o.Network == "" {
		o.Network = "tcp"
	}
	if o.Addr == "" {
		o.Addr = ":8080"
	}
}

func WithName(name string) Option {
	return func(opts *Options) *Options {
		opts.Name = name
		return opts
	}
}

func WithAddr(addr string) Option {
	return func(opts *Options) *Options {
		opts.Addr = addr
		return opts
	}
}

func WithNetwork(network string) Option {
	return func(opts *Options) *Options {
		opts.Network = network
		return opts
	}
}

// WithTLS makes the server wrap every accepted connection in a TLS
// handshake using the PEM certificate chain and private key at the
// given paths.
func WithTLS(certFile, keyFile string) Option {
	return func(opts *Options) *Options {
		opts.CertFile = certFile
		opts.KeyFile = keyFile
		return opts
	}
}

func WithEnableMetrics(enable bool) Option {
	return func(opts *Options) *Options {
		opts.EnableMetrics = enable
		return opts
	}
}

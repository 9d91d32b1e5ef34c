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

package server

import (
	"bufio"
	"crypto/tls"
	"net"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	golocalv1 "github.com/Murilinho145SG/Routs/pkg/golocal/v1"
	"github.com/Murilinho145SG/Routs/pkg/logger"
	"github.com/Murilinho145SG/Routs/pkg/safego"
	"github.com/Murilinho145SG/Routs/pkg/tools"
	"github.com/Murilinho145SG/Routs/web/metric"
	"github.com/Murilinho145SG/Routs/web/protocol"
	"github.com/Murilinho145SG/Routs/web/protocol/http1"
	"github.com/Murilinho145SG/Routs/web/router"
	"github.com/Murilinho145SG/Routs/web/server/config"
)

var notFoundBody = []byte("Not Found")

var (
	httpMetric     *metric.HttpMetric
	httpMetricOnce sync.Once
)

// HttpServer accepts TCP (optionally TLS-wrapped) connections and serves
// exactly one HTTP/1.1 request per connection. The routing table and TLS
// context are read-only after Start and shared by every connection task.
type HttpServer struct {
	options   *config.Options
	logger    logger.ILog
	router    *router.Router
	tlsConfig *tls.Config
	listener  net.Listener
	metric    *metric.HttpMetric
	closed    int32
}

func NewHttpServer(r *router.Router, opts ...config.Option) *HttpServer {
	options := config.NewOptions(opts)

	s := &HttpServer{
		options: options,
		logger:  logger.DefaultLogger(),
		router:  r,
	}

	if options.EnableMetrics {
		httpMetricOnce.Do(func() {
			httpMetric = metric.NewHttpMetric()
		})
		s.metric = httpMetric
	}

	return s
}

func (s *HttpServer) Name() string {
	return "HTTP_SERVER:" + s.options.Name
}

// Start loads the TLS context when configured, binds the listener and
// launches the accept loop. Any failure here is fatal to startup; there
// is no partial or degraded mode.
func (s *HttpServer) Start() error {
	if s.options.CertFile != "" || s.options.KeyFile != "" {
		tlsConfig, err := LoadTLSConfig(s.options.CertFile, s.options.KeyFile)
		if err != nil {
			return err
		}
		s.tlsConfig = tlsConfig
	}

	listener, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.logger.Info(
		"\n***************************** http server startup ***********************************************\n"+
			"************* web service [name:%s] [tls:%v] listening on %s *********\n"+
			"*************************************************************************************************", s.options.Name, s.tlsConfig != nil, s.options.Addr)

	safego.Go(s.acceptLoop)
	return nil
}

// Addr reports the bound listener address, useful when Addr was ":0".
func (s *HttpServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *HttpServer) Close() {
	s.logger.Info("      **** http server shutdown ****")
	atomic.StoreInt32(&s.closed, 1)
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// acceptLoop never stops on a per-connection failure. It spawns one
// goroutine per accepted connection and immediately returns to accepting.
func (s *HttpServer) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if atomic.LoadInt32(&s.closed) == 1 {
				return
			}
			s.logger.Error("accept failed. Error: %s", err.Error())
			continue
		}

		c := conn
		safego.Go(func() {
			s.serveConn(c)
		})
	}
}

// serveConn drives one connection end to end: optional TLS handshake,
// framing, parsing, dispatch, serialization, flush, close. Every failure
// along the way is terminal to this one connection only.
func (s *HttpServer) serveConn(conn net.Conn) {
	defer golocalv1.Clean()
	defer conn.Close()

	golocalv1.PutTraceID(tools.UUID())
	begin := time.Now()

	if s.tlsConfig != nil {
		tlsConn := tls.Server(conn, s.tlsConfig)
		if err := tlsConn.Handshake(); err != nil {
			// No plaintext channel exists yet, nothing can be sent back.
			s.logger.Error("tls handshake failed. Error: %s", err.Error())
			return
		}
		conn = tlsConn
	}

	header, body, err := http1.NewFramer(conn).ReadMessage()
	if err != nil {
		s.logger.Error("read request failed. Error: %s", err.Error())
		return
	}

	req, err := protocol.ParseRequest(header, body, conn.RemoteAddr())
	if err != nil {
		// The peer only sees the socket close, no 400 is sent.
		s.logger.Error("parse request failed. Error: %s", err.Error())
		return
	}

	w := protocol.NewWriter()
	if handler, ok := s.router.Handler(req.Path); ok {
		if !s.invokeHandler(handler, w, req) {
			return
		}
	} else {
		w.WriteHeader(protocol.StatusNotFound)
		w.Write(notFoundBody)
	}

	if err = s.writeResponse(conn, w); err != nil {
		s.logger.Error("write response failed. Error: %s", err.Error())
		return
	}

	if s.metric != nil {
		s.metric.SaveMetric(s.options.Name, strconv.Itoa(w.StatusCode().Code()), req.Method, req.Path, time.Since(begin).Milliseconds())
	}
}

// invokeHandler runs the handler synchronously. A panic escaping the
// handler is connection-fatal: logged, no response sent.
func (s *HttpServer) invokeHandler(handler router.HandlerFunc, w *protocol.Writer, r *protocol.Request) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("handler panic on %s %s: %v\n%s", r.Method, r.Path, rec, string(debug.Stack()))
			ok = false
		}
	}()

	handler(w, r)
	return true
}

func (s *HttpServer) writeResponse(conn net.Conn, w *protocol.Writer) error {
	bw := bufio.NewWriter(conn)
	if _, err := bw.Write(w.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}

// Serve runs a plaintext server on addr. It only returns on a startup
// failure; once serving it blocks forever.
func Serve(r *router.Router, addr string) error {
	s := NewHttpServer(r, config.WithAddr(addr))
	if err := s.Start(); err != nil {
		return err
	}
	select {}
}

// ServeTLS runs a TLS server on addr with the given PEM certificate chain
// and private key. It only returns on a startup failure.
func ServeTLS(r *router.Router, addr, certFile, keyFile string) error {
	s := NewHttpServer(r, config.WithAddr(addr), config.WithTLS(certFile, keyFile))
	if err := s.Start(); err != nil {
		return err
	}
	select {}
}

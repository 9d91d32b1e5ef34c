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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Murilinho145SG/Routs/web/protocol"
	"github.com/Murilinho145SG/Routs/web/router"
	"github.com/Murilinho145SG/Routs/web/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, r *router.Router, opts ...config.Option) *HttpServer {
	t.Helper()

	opts = append([]config.Option{config.WithAddr("127.0.0.1:0")}, opts...)
	s := NewHttpServer(r, opts...)
	require.NoError(t, s.Start())
	t.Cleanup(s.Close)
	return s
}

// roundTrip writes one raw request and reads until the server closes the
// connection.
func roundTrip(t *testing.T, addr string, raw string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(raw))
	require.NoError(t, err)

	resp, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(resp)
}

func TestServeRegisteredHandler(t *testing.T) {
	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello World!"}`))
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"), "got %q", resp)
	assert.True(t, strings.HasSuffix(resp, `{"message":"Hello World!"}`), "got %q", resp)
	assert.Contains(t, resp, "Content-Type: application/json\r\n")
}

func TestServePostBody(t *testing.T) {
	bodies := make(chan []byte, 1)

	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		if r.Method != "POST" {
			w.WriteHeader(protocol.StatusMethodNotAllowed)
			return
		}
		bodies <- r.Body
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")
	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"), "got %q", resp)

	select {
	case body := <-bodies:
		assert.Equal(t, []byte("hello"), body)
	case <-time.After(time.Second):
		t.Fatal("handler never saw the body")
	}
}

func TestServeUnregisteredPath(t *testing.T) {
	invoked := false

	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) { invoked = true })
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "GET /missing HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 404 Not Found\r\n"), "got %q", resp)
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\nNot Found"), "got %q", resp)
	assert.False(t, invoked)
}

func TestServeMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Header().Set("Access-Control-Allow-Methods", "GET")
		if r.Method != "POST" {
			w.WriteHeader(protocol.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(protocol.StatusOK)
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.True(t, strings.HasPrefix(resp, "HTTP/1.1 405 Method Not Allowed\r\n"), "got %q", resp)
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\n"), "empty body expected, got %q", resp)
}

// Exactly one message reaches the wire even when the handler writes the
// body twice; the second write replaces the first.
func TestServeOneResponsePerConnection(t *testing.T) {
	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Write([]byte("first"))
		w.Write([]byte("final"))
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.Equal(t, 1, strings.Count(resp, "HTTP/1.1"))
	assert.True(t, strings.HasSuffix(resp, "\r\n\r\nfinal"), "got %q", resp)
}

// A malformed request line aborts the connection without any response.
func TestServeParseFailureClosesSilently(t *testing.T) {
	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		t.Error("handler must not run for a malformed request")
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "\r\n\r\n")
	assert.Empty(t, resp)
}

// A panic escaping a handler is connection-fatal: the socket closes with
// nothing written, and the server keeps accepting.
func TestServeHandlerPanic(t *testing.T) {
	r := router.New()
	r.HandleFunc("/boom", func(w *protocol.Writer, r *protocol.Request) {
		panic("handler exploded")
	})
	r.HandleFunc("/ok", func(w *protocol.Writer, r *protocol.Request) {
		w.Write([]byte("still alive"))
	})
	s := startServer(t, r)

	resp := roundTrip(t, s.Addr().String(), "GET /boom HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.Empty(t, resp)

	resp = roundTrip(t, s.Addr().String(), "GET /ok HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.True(t, strings.HasSuffix(resp, "still alive"), "got %q", resp)
}

func TestServeConcurrentConnections(t *testing.T) {
	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Write([]byte("ok"))
	})
	s := startServer(t, r)

	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.Dial("tcp", s.Addr().String())
			if err != nil {
				t.Error(err)
				return
			}
			defer conn.Close()
			_, _ = conn.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
			resp, _ := io.ReadAll(conn)
			if !strings.HasSuffix(string(resp), "ok") {
				t.Errorf("got %q", resp)
			}
		}()
	}
	wg.Wait()
}

func writeTestCert(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "routs test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), 0600))
	return certFile, keyFile
}

func TestServeTLSHandshakeAndRequest(t *testing.T) {
	certFile, keyFile := writeTestCert(t)

	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Write([]byte("hello over tls"))
	})
	s := startServer(t, r, config.WithTLS(certFile, keyFile))

	conn, err := tls.Dial("tcp", s.Addr().String(), &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	resp, _ := io.ReadAll(conn)
	assert.True(t, strings.HasPrefix(string(resp), "HTTP/1.1 200 OK\r\n"), "got %q", resp)
	assert.True(t, strings.HasSuffix(string(resp), "hello over tls"), "got %q", resp)
}

// A client speaking plaintext to a TLS listener fails the handshake; the
// connection dies quietly and the accept loop keeps going.
func TestServeTLSHandshakeFailure(t *testing.T) {
	certFile, keyFile := writeTestCert(t)

	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Write([]byte("ok"))
	})
	s := startServer(t, r, config.WithTLS(certFile, keyFile))

	// The failed handshake may leave a TLS alert on the wire, but never an
	// HTTP response.
	resp := roundTrip(t, s.Addr().String(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	assert.NotContains(t, resp, "HTTP/1.1")

	conn, err := tls.Dial("tcp", s.Addr().String(), &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err)
	defer conn.Close()
	_, _ = conn.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
	got, _ := io.ReadAll(conn)
	assert.True(t, strings.HasSuffix(string(got), "ok"), "got %q", got)
}

// Broken certificate paths are fatal at startup, before any listener binds.
func TestStartBrokenTLSConfigIsFatal(t *testing.T) {
	s := NewHttpServer(router.New(),
		config.WithAddr("127.0.0.1:0"),
		config.WithTLS("/does/not/exist.pem", "/does/not/exist.key"))

	assert.Error(t, s.Start())
}

func TestServerName(t *testing.T) {
	s := NewHttpServer(router.New(), config.WithName("edge"))
	assert.Equal(t, "HTTP_SERVER:edge", s.Name())
}

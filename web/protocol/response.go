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

package protocol

import (
	"bytes"
	"fmt"
)

// Writer accumulates the response a handler wants to send. Status defaults
// to 200 OK, headers start empty, Write replaces the body wholesale. The
// server serializes it exactly once after the handler returns.
//
// No Content-Length or Connection header is synthesized. A handler that
// wants them sets them itself.
type Writer struct {
	statusCode Status
	header     Header
	body       []byte
}

func NewWriter() *Writer {
	return &Writer{
		statusCode: StatusOK,
		header:     NewHeader(),
	}
}

func (w *Writer) Header() Header {
	return w.header
}

func (w *Writer) WriteHeader(statusCode Status) {
	w.statusCode = statusCode
}

// Write replaces the body with data. It does not append.
func (w *Writer) Write(data []byte) {
	w.body = append(w.body[:0:0], data...)
}

func (w *Writer) StatusCode() Status {
	return w.statusCode
}

func (w *Writer) Body() []byte {
	return w.body
}

// Bytes renders the wire form: status line, headers, blank line, body.
// Body bytes are written untouched, binary payloads stay byte-exact.
func (w *Writer) Bytes() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("HTTP/1.1 %s\r\n", w.statusCode.String()))
	for key, value := range w.header {
		buf.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	buf.WriteString("\r\n")
	buf.Write(w.body)

	return buf.Bytes()
}

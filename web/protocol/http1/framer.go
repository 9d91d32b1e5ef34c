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

// Package http1 frames one HTTP/1.1 message off a raw byte stream.
package http1

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

const chunkSize = 1024

var headerDelimiter = []byte("\r\n\r\n")

// Framer accumulates the raw header block and body of exactly one message.
// It lives for one request on one connection and is then discarded. Neither
// the header block nor the body is bounded in size.
type Framer struct {
	stream io.Reader
	header []byte
	body   []byte
}

func NewFramer(stream io.Reader) *Framer {
	return &Framer{stream: stream}
}

// ReadMessage reads fixed-size chunks until the header delimiter has been
// seen and the declared Content-Length of body bytes has accumulated. Bytes
// read past the delimiter belong to the body. A missing or unparsable
// Content-Length means an empty body. When the peer closes early, whatever
// has accumulated so far is returned without error.
func (f *Framer) ReadMessage() (header, body []byte, err error) {
	var (
		buffer        = make([]byte, chunkSize)
		headerEnd     bool
		contentLength int
	)

	for {
		n, readErr := f.stream.Read(buffer)
		if n > 0 {
			if !headerEnd {
				f.header = append(f.header, buffer[:n]...)
				if pos := bytes.Index(f.header, headerDelimiter); pos >= 0 {
					headerEnd = true
					contentLength = parseContentLength(f.header[:pos])
					f.body = append(f.body, f.header[pos+len(headerDelimiter):]...)
					f.header = f.header[:pos]
				}
			} else {
				f.body = append(f.body, buffer[:n]...)
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				// Peer closed, hand over what we have.
				return f.header, f.body, nil
			}
			return nil, nil, readErr
		}

		if headerEnd && len(f.body) >= contentLength {
			return f.header, f.body, nil
		}
	}
}

// parseContentLength scans the raw header block for a Content-Length line,
// name compared case-insensitively. Absent or unparsable values count as 0.
func parseContentLength(header []byte) int {
	for _, line := range strings.Split(string(header), "\n") {
		line = strings.TrimSuffix(line, "\r")

		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(line[:idx]), "Content-Length") {
			continue
		}

		length, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
		if err != nil || length < 0 {
			return 0
		}
		return length
	}
	return 0
}

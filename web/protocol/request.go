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
	"errors"
	"net"
	"strings"
)

var (
	ErrMissingRequestLine = errors.New("protocol: missing request line")
	ErrMissingMethod      = errors.New("protocol: missing method token")
	ErrMissingPath        = errors.New("protocol: missing path token")
)

// Request is one parsed HTTP request. It is built once by ParseRequest and
// owned by its connection task until the handler returns.
type Request struct {
	Method     string
	Path       string
	Headers    Header
	Body       []byte
	RemoteAddr net.Addr
}

// ParseRequest builds a Request from the framed header block and body bytes.
//
// The header block is decoded as text, invalid byte sequences are replaced
// rather than rejected. The first line must carry at least a method and a
// path token. Every following line is split on the first ':' into a trimmed
// name/value pair; lines without a ':' are skipped. On duplicate names the
// last occurrence wins. The body is taken verbatim.
func ParseRequest(header, body []byte, remote net.Addr) (*Request, error) {
	text := strings.ToValidUTF8(string(header), "�")

	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrMissingRequestLine
	}

	parts := strings.Fields(lines[0])
	if len(parts) == 0 {
		return nil, ErrMissingMethod
	}
	if len(parts) < 2 {
		return nil, ErrMissingPath
	}

	headers := NewHeader()
	for _, line := range lines[1:] {
		if line == "" {
			break
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		headers.Set(strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]))
	}

	return &Request{
		Method:     parts[0],
		Path:       parts[1],
		Headers:    headers,
		Body:       body,
		RemoteAddr: remote,
	}, nil
}

// splitLines splits on '\n' and strips a trailing '\r' from each line. A
// trailing newline does not yield an empty final line, matching the header
// block shape the framer hands over.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Copyright 2025 the jshound authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jshound

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// MockResponse is a canned HTTP response served by MockTransport.
type MockResponse struct {
	// StatusCode to return, default 200
	StatusCode int
	// Body is the response body content
	Body string
	// Error simulates a connection-level failure instead of a response
	Error error
	// FailuresBeforeSuccess makes the first N round trips fail with Error
	// before the canned response is served. Used to exercise retry paths.
	FailuresBeforeSuccess int

	attempts int
}

// MockTransport implements http.RoundTripper, serving registered responses
// for exact source URLs without a live server. Hosts can be arbitrary, which
// lets scope-sensitive tests use realistic domains.
type MockTransport struct {
	mu        sync.Mutex
	responses map[string]*MockResponse
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]*MockResponse)}
}

// Register maps an exact URL to a response.
func (m *MockTransport) Register(url string, response *MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if response.StatusCode == 0 {
		response.StatusCode = 200
	}
	m.responses[url] = response
}

// RegisterScript is a convenience for a 200 response with a script body.
func (m *MockTransport) RegisterScript(url, body string) {
	m.Register(url, &MockResponse{StatusCode: 200, Body: body})
}

// Requests returns how many round trips have been made for url.
func (m *MockTransport) Requests(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.responses[url]; ok {
		return r.attempts
	}
	return 0
}

// RoundTrip implements http.RoundTripper. Unregistered URLs get a 404.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	mock, found := m.responses[req.URL.String()]
	if found {
		mock.attempts++
		if mock.Error != nil && (mock.FailuresBeforeSuccess == 0 || mock.attempts <= mock.FailuresBeforeSuccess) {
			err := mock.Error
			m.mu.Unlock()
			return nil, err
		}
	}
	m.mu.Unlock()

	if !found {
		return &http.Response{
			StatusCode: 404,
			Body:       io.NopCloser(bytes.NewBufferString("not found")),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: mock.StatusCode,
		Body:       io.NopCloser(bytes.NewBufferString(mock.Body)),
		Header:     make(http.Header),
		Request:    req,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}, nil
}

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

// Package testutil provides shared test utilities for jshound tests.
// This includes HTTP test servers and common script bodies.
package testutil

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"
)

// ScriptBody is a small bundle excerpt with a mix of embedded URLs.
var ScriptBody = []byte(`
(function(){
	var api = "https://api.example.com/v1/users?id=1";
	var cdn = 'https://cdn.example.com/static/app.min.js';
	fetch("https://example.com/login");
	// templated, should be cut at the placeholder
	var tpl = ` + "`https://example.com/item/${id}`" + `;
	var ext = "https://tracker.example.org/pixel.gif";
})();
`)

// NewUnstartedTestServer creates an unstarted HTTP test server with all
// endpoints configured.
func NewUnstartedTestServer() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Write(ScriptBody)
	})

	mux.HandleFunc("/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte("not found"))
	})

	mux.HandleFunc("/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte("server error"))
	})

	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			w.Write([]byte("finally"))
		}
	})

	// flaky hangs on the first two requests and succeeds afterwards, for
	// retry tests with a short client timeout
	var flakyCalls atomic.Int32
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		if flakyCalls.Add(1) <= 2 {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		w.Write(ScriptBody)
	})

	mux.HandleFunc("/gzip", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/javascript")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		gz.Write(ScriptBody)
	})

	mux.HandleFunc("/user_agent", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("User-Agent")))
	})

	mux.HandleFunc("/accept_header", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("Accept")))
	})

	mux.Handle("/redirect", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app.js", http.StatusMovedPermanently)
	}))

	return httptest.NewUnstartedServer(mux)
}

// NewTestServer creates and starts a new HTTP test server.
func NewTestServer() *httptest.Server {
	srv := NewUnstartedTestServer()
	srv.Start()
	return srv
}

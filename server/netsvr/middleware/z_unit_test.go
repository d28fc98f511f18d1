// Copyright 2025 Zintix Labs
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

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/bowlab/server/netsvr/middleware"
)

func chain(h http.Handler, log *slog.Logger) http.Handler {
	h = middleware.Compression(h)
	h = middleware.Recover(log)(h)
	h = middleware.AccessLog(log)(h)
	return middleware.RequestID(h)
}

func TestRecoverAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("gutter")
	}), log)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/totals", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	id := rec.Header().Get(middleware.RequestIDHeader)
	if id == "" {
		t.Fatalf("missing request id")
	}
	out := buf.String()
	for _, want := range []string{`"msg":"http.panic"`, `"panic":"gutter"`, `"msg":"http.access"`, `"status":500`, `"request_id":"` + id + `"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s:\n%s", want, out)
		}
	}
}

func TestCompressionSkipsNoBody(t *testing.T) {
	h := middleware.Compression(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("204 must stay empty: %d %q", rec.Code, rec.Body.Bytes())
	}
	if rec.Header().Get("Content-Encoding") != "" {
		t.Fatalf("204 must not carry content-encoding")
	}
}

func TestGetReqIdNumPart(t *testing.T) {
	var num string
	h := middleware.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		num = middleware.GetReqIdNumPart(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if num == "" || strings.Contains(num, "-") {
		t.Fatalf("num part = %q", num)
	}
}

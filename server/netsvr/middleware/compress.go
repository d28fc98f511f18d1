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

package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級設定
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// encoder 是 gzip.Writer 與 zstd.Encoder 的共同子集
type encoder interface {
	io.Writer
	Reset(w io.Writer)
	Flush() error
	Close() error
}

type compressor struct {
	gzipPool sync.Pool
	zstdPool sync.Pool
}

func newCompressor(cfg CompressConfig) *compressor {
	c := new(compressor)
	c.gzipPool.New = func() any {
		gw, err := gzip.NewWriterLevel(io.Discard, cfg.GzipLevel)
		if err != nil {
			gw = gzip.NewWriter(io.Discard)
		}
		return gw
	}
	c.zstdPool.New = func() any {
		zw, err := zstd.NewWriter(io.Discard,
			zstd.WithEncoderLevel(cfg.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}
	return c
}

// get 依 encoding 取出重設到 w 的 encoder
func (c *compressor) get(encoding string, w io.Writer) encoder {
	var enc encoder
	if encoding == "zstd" {
		enc = c.zstdPool.Get().(*zstd.Encoder)
	} else {
		enc = c.gzipPool.Get().(*gzip.Writer)
	}
	enc.Reset(w)
	return enc
}

func (c *compressor) put(encoding string, enc encoder) {
	if encoding == "zstd" {
		c.zstdPool.Put(enc)
	} else {
		c.gzipPool.Put(enc)
	}
}

// negotiate 從 Accept-Encoding 挑選 zstd 或 gzip；q=0 視為拒絕。
func negotiate(header string) string {
	var gz bool
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				continue
			}
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zstd":
			return "zstd"
		case "gzip":
			gz = true
		}
	}
	if gz {
		return "gzip"
	}
	return ""
}

func isNoBodyStatus(code int) bool {
	// 204 No Content, 304 Not Modified, 1xx Informational
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

type compressResponseWriter struct {
	http.ResponseWriter
	enc      encoder
	disabled bool // 204/304 動態取消壓縮
}

func (cw *compressResponseWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressResponseWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if isNoBodyStatus(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressResponseWriter) Flush() {
	if !cw.disabled {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compression 使用 DefaultCompressConfig。
func Compression(next http.Handler) http.Handler {
	return CompressionWith(DefaultCompressConfig)(next)
}

// CompressionWith 依 Accept-Encoding 以 zstd（優先）或 gzip 壓縮回應。
func CompressionWith(cfg CompressConfig) func(http.Handler) http.Handler {
	c := newCompressor(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// HEAD 沒有 body；已經有 Content-Encoding 的不二次壓縮
			encoding := negotiate(r.Header.Get("Accept-Encoding"))
			if r.Method == http.MethodHead || encoding == "" || w.Header().Get("Content-Encoding") != "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Encoding", encoding)
			w.Header().Add("Vary", "Accept-Encoding")

			enc := c.get(encoding, w)
			cw := &compressResponseWriter{ResponseWriter: w, enc: enc}
			defer func() {
				// 204/304 不能寫入 footer
				if cw.disabled {
					enc.Reset(io.Discard)
				}
				_ = enc.Close()
				c.put(encoding, enc)
			}()

			next.ServeHTTP(cw, r)
		})
	}
}

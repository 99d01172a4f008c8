// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/folio/internal/logging"
)

// DefaultCompressionMinSize is the smallest body worth compressing.
const DefaultCompressionMinSize = 1024

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

var brotliWriterPool = sync.Pool{
	New: func() interface{} {
		return brotli.NewWriterLevel(io.Discard, brotli.DefaultCompression)
	},
}

// bufferedResponseWriter holds the whole body so the size is known before
// choosing whether to compress. Portfolio payloads are small JSON documents.
type bufferedResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bufferedResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.buf.Write(b)
}

// Compression compresses response bodies of at least minSize bytes with
// brotli, or gzip when the client does not accept br.
func Compression(minSize int) func(http.Handler) http.Handler {
	if minSize <= 0 {
		minSize = DefaultCompressionMinSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"))
			if encoding == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			bw := &bufferedResponseWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)

			status := bw.status
			if status == 0 {
				status = http.StatusOK
			}
			body := bw.buf.Bytes()

			if len(body) < minSize || w.Header().Get("Content-Encoding") != "" || !bodyAllowed(status) {
				w.WriteHeader(status)
				if _, err := w.Write(body); err != nil {
					logging.Debug().Err(err).Msg("Failed to write response")
				}
				return
			}

			compressed, err := compress(encoding, body)
			if err != nil {
				logging.Error().Err(err).Str("encoding", encoding).Msg("Response compression failed")
				w.WriteHeader(status)
				_, _ = w.Write(body)
				return
			}

			w.Header().Set("Content-Encoding", encoding)
			w.Header().Set("Content-Length", strconv.Itoa(len(compressed)))
			w.WriteHeader(status)
			if _, err := w.Write(compressed); err != nil {
				logging.Debug().Err(err).Msg("Failed to write compressed response")
			}
		})
	}
}

func bodyAllowed(status int) bool {
	return status != http.StatusNoContent && status != http.StatusNotModified && status >= http.StatusOK
}

func compress(encoding string, body []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(body) / 2)

	switch encoding {
	case encodingBrotli:
		bw := brotliWriterPool.Get().(*brotli.Writer)
		defer brotliWriterPool.Put(bw)
		bw.Reset(&out)
		if _, err := bw.Write(body); err != nil {
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
	default:
		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(gz)
		gz.Reset(&out)
		if _, err := gz.Write(body); err != nil {
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// negotiateEncoding picks br over gzip from an Accept-Encoding header.
// Codings with q=0 are refused.
func negotiateEncoding(header string) string {
	var gzipOK, brOK bool
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if refused(params) {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case encodingBrotli:
			brOK = true
		case encodingGzip, "*":
			gzipOK = true
		}
	}

	switch {
	case brOK:
		return encodingBrotli
	case gzipOK:
		return encodingGzip
	default:
		return ""
	}
}

func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.TrimSpace(k) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && q == 0
	}
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates an [http.ResponseWriter] so the logging
// middleware can report the status code and body size of a status-endpoint
// response after the handler returns. The body itself is not buffered.
//
// WriteHeader reaches the underlying writer at most once; later calls are
// ignored, as the [http.ResponseWriter] contract requires.
type responseWriter struct {
	http.ResponseWriter

	// status is the code passed to the first WriteHeader call, or 200 when
	// the handler wrote a body without one. Zero means nothing was written.
	status int

	// wroteHeader guards the single forwarded WriteHeader call.
	wroteHeader bool

	// size is the total number of body bytes written across all Write calls.
	size int
}

// WriteHeader records statusCode and forwards it to the underlying writer
// unless a status was already sent.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write sends b, implying a 200 status when none was written, and adds the
// bytes actually written to size.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

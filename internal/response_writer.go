package internal

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
)

// ErrWriterSealed is returned by writes that arrive after the request finished.
var ErrWriterSealed = errors.New("response writer sealed")

// ResponseWriter wraps http.ResponseWriter to track whether and what was
// written, and to run hooks before the first write.
type ResponseWriter struct {
	http.ResponseWriter
	beforeWrite []func()
	status      int
	size        int64
	mu          sync.Mutex
	written     bool

	// io serializes writes to the underlying writer against Seal.
	io     sync.Mutex
	sealed atomic.Bool
}

// NewResponseWriter creates a new ResponseWriter.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// OnBeforeWrite registers a hook to run before the first write.
// Hooks run in registration order.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// markWritten flips the written flag once and returns the pending hooks.
func (w *ResponseWriter) markWritten(code int) ([]func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return nil, false
	}
	w.written = true
	if code != 0 {
		w.status = code
	}
	hooks := w.beforeWrite
	w.beforeWrite = nil
	return hooks, true
}

// Seal drops every later write. Handlers still running after their
// request was answered (e.g. past a Timeout) write into the void.
func (w *ResponseWriter) Seal() {
	w.io.Lock()
	defer w.io.Unlock()
	w.sealed.Store(true)
}

// Header returns a throwaway map once sealed.
func (w *ResponseWriter) Header() http.Header {
	if w.sealed.Load() {
		return http.Header{}
	}
	return w.ResponseWriter.Header()
}

// WriteHeader sends the status code. Calls after the first are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.io.Lock()
	defer w.io.Unlock()
	if w.sealed.Load() {
		return
	}

	hooks, first := w.markWritten(code)
	if !first {
		return
	}
	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes the body, sending an implicit 200 first if needed.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.io.Lock()
	defer w.io.Unlock()
	if w.sealed.Load() {
		return 0, ErrWriterSealed
	}

	if hooks, first := w.markWritten(0); first {
		for _, fn := range hooks {
			fn()
		}
		w.ResponseWriter.WriteHeader(w.Status())
	}

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the HTTP status code of the response.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written returns true if the response has been written.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements the http.Flusher interface.
func (w *ResponseWriter) Flush() {
	w.io.Lock()
	defer w.io.Unlock()
	if w.sealed.Load() {
		return
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

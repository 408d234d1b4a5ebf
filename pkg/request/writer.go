package request

import "net/http"

// ClientWriter wraps a http.ResponseWriter and records the status code
// written to it, as the standard writer does not expose it afterwards.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the status code written to the client.
	statusCode int
}

// NewClientWriter creates a new ClientWriter.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *ClientWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// StatusCode returns the status code written to the client. If no status
// code has been written explicitly, 200 is returned.
func (w *ClientWriter) StatusCode() int {
	return w.statusCode
}

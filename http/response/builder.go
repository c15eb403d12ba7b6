package response // import "github.com/openleaf/openleaf/http/response"

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/log"
)

// Builder generates HTTP responses.
type Builder struct {
	w          http.ResponseWriter
	r          *http.Request
	statusCode int
	headers    map[string]string
	body       interface{}
}

// New creates a new response builder.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:          w,
		r:          r,
		statusCode: http.StatusOK,
		headers: map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
		},
	}
}

// WithStatus uses the given status code to build the response.
func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

// WithHeader adds the given HTTP header to the response.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

// WithBody uses the given body to build the response.
func (b *Builder) WithBody(body interface{}) *Builder {
	b.body = body
	return b
}

// Write generates the response.
func (b *Builder) Write() {
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}

	if b.body == nil {
		b.w.WriteHeader(b.statusCode)
		return
	}

	b.w.WriteHeader(b.statusCode)
	switch v := b.body.(type) {
	case []byte:
		b.w.Write(v)
	case string:
		b.w.Write([]byte(v))
	case error:
		b.w.Write([]byte(v.Error()))
	case io.Reader:
		if _, err := io.Copy(b.w, v); err != nil {
			log.Error("Unable to copy response body", zap.Error(err))
		}
	default:
		b.w.Write([]byte(fmt.Sprintf("%v", v)))
	}
}

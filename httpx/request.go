package httpx

import (
	"context"

	"github.com/aleksandar-had/http-server/httpx/internal/http1"
)

// Request is one parsed HTTP request. The request target lives in Path
// and never collides with a header of the same name.
type Request struct {
	Method string
	// Path is the request target exactly as sent; no percent-decoding.
	Path   string
	Proto  string
	Header Header
	// Body is nil when the request head was not terminated, and empty
	// when it was but nothing followed.
	Body       []byte
	RemoteAddr string
	ctx        context.Context
}

// Context returns the request's context. The server's context carries the
// request ID and, when the client sent X-Request-Id, the correlation ID.
func (r *Request) Context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func WithContext(r *Request, ctx context.Context) *Request {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// ReadRequest parses raw request bytes into a Request.
func ReadRequest(raw []byte) (*Request, error) {
	pr, err := http1.ParseRequest(raw)
	if err != nil {
		return nil, badRequest(err)
	}
	return &Request{
		Method: pr.Method,
		Path:   pr.RequestURI,
		Proto:  pr.Proto,
		Header: Header(pr.Header),
		Body:   pr.Body,
	}, nil
}

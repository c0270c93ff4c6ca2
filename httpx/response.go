package httpx

import (
	"bytes"
	"io"
	"strconv"

	"github.com/aleksandar-had/http-server/httpx/internal/http1"
)

// Field is one response header line.
type Field = http1.Field

// Response is a complete response. Header fields are written in the order
// they were set; nothing is added implicitly.
type Response struct {
	StatusCode int
	Header     []Field
	Body       []byte
}

// NewResponse returns a response with no headers and no body.
func NewResponse(code int) *Response {
	return &Response{StatusCode: code}
}

// Text returns a response carrying body with Content-Type and
// Content-Length set.
func Text(code int, contentType string, body []byte) *Response {
	res := NewResponse(code)
	res.Set("Content-Type", contentType)
	res.Set("Content-Length", strconv.Itoa(len(body)))
	res.Body = body
	return res
}

// Set replaces the value of key in place, or appends it.
func (r *Response) Set(key, value string) {
	for i := range r.Header {
		if r.Header[i].Key == key {
			r.Header[i].Value = value
			return
		}
	}
	r.Header = append(r.Header, Field{Key: key, Value: value})
}

func (r *Response) Get(key string) string {
	for _, f := range r.Header {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Status returns the status line text without the protocol, e.g. "404 Not Found".
func (r *Response) Status() string {
	return strconv.Itoa(r.StatusCode) + " " + http1.StatusText(r.StatusCode)
}

// WriteTo serializes the response to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := http1.WriteResponse(cw, r.StatusCode, "", r.Header, r.Body)
	return cw.n, err
}

// Bytes returns the serialized response.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = r.WriteTo(&buf)
	return buf.Bytes()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

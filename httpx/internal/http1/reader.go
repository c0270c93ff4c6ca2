package http1

import (
	"bytes"
	"errors"
	"net/textproto"
	"strconv"
	"strings"
)

var (
	ErrEmptyRequest         = errors.New("http1: empty request")
	ErrMalformedRequestLine = errors.New("http1: malformed request line")
)

var headEnd = []byte("\r\n\r\n")

// ParsedRequest is a minimal representation parsed from the wire.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	// Header holds one value per canonical key; a repeated header keeps
	// the last value seen.
	Header map[string]string
	// Body is nil when the head was not terminated by an empty line.
	Body []byte
}

// ParseRequest parses one request from raw. raw is whatever a single read
// produced, so the body may be shorter than Content-Length says.
func ParseRequest(raw []byte) (*ParsedRequest, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyRequest
	}
	head := raw
	var body []byte
	if i := bytes.Index(raw, headEnd); i >= 0 {
		head = raw[:i]
		body = raw[i+len(headEnd):]
	}
	lines := strings.Split(string(head), "\r\n")

	parts := strings.Split(lines[0], " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, ErrMalformedRequestLine
	}
	pr := &ParsedRequest{
		Method:     parts[0],
		RequestURI: parts[1],
		Proto:      parts[2],
		Header:     parseHeaders(lines[1:]),
	}
	if body != nil {
		pr.Body = trimToContentLength(body, pr.Header)
	}
	return pr, nil
}

func parseHeaders(lines []string) map[string]string {
	h := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, ": ")
		if !ok || k == "" {
			continue
		}
		h[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	return h
}

func trimToContentLength(body []byte, h map[string]string) []byte {
	v, ok := h["Content-Length"]
	if !ok {
		return body
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 || n >= len(body) {
		return body
	}
	return body[:n]
}

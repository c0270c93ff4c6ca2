package httpx

import (
	"bytes"
	"compress/gzip"
	"strings"
)

const (
	encodingGzip = "gzip"
	// noEncoding stands in for an absent Accept-Encoding header.
	noEncoding = "invalid"
)

// SupportsGzip reports whether an Accept-Encoding value lists gzip. The
// value is split on ", " and a token must equal "gzip" exactly; case,
// wildcards and q-values are not interpreted.
func SupportsGzip(acceptEncoding string) bool {
	for _, tok := range strings.Split(acceptEncoding, ", ") {
		if tok == encodingGzip {
			return true
		}
	}
	return false
}

// Gzip compresses p at the default level.
func Gzip(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(p); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

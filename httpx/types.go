package httpx

import (
	"net/textproto"
)

// Header holds request headers keyed by canonical name, one value per
// name. A repeated header keeps the last value sent.
type Header map[string]string

func (h Header) Get(key string) string {
	v, _ := h.Lookup(key)
	return v
}

// Lookup is like Get but reports whether the header was present at all.
func (h Header) Lookup(key string) (string, bool) {
	v, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return v, ok
}

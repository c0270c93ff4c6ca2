package httpx

import (
	"errors"
	"testing"
)

func TestResponseBytes(t *testing.T) {
	if got := string(NewResponse(200).Bytes()); got != "HTTP/1.1 200 OK\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
	if got := string(NewResponse(404).Bytes()); got != "HTTP/1.1 404 Not Found\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
	res := Text(200, "text/plain", []byte("abc"))
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc"
	if got := string(res.Bytes()); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResponseSetKeepsOrder(t *testing.T) {
	res := NewResponse(201)
	res.Set("A", "1")
	res.Set("B", "2")
	res.Set("A", "3")
	if len(res.Header) != 2 || res.Header[0] != (Field{Key: "A", Value: "3"}) || res.Header[1].Key != "B" {
		t.Fatalf("header=%v", res.Header)
	}
	if res.Get("A") != "3" || res.Get("C") != "" {
		t.Fatalf("Get mismatch: %v", res.Header)
	}
	if res.Status() != "201 Created" {
		t.Fatalf("status=%q", res.Status())
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{badRequest(errors.New("x")), 400},
		{ErrPathEscapes, 400},
		{ErrMissingHeader, 400},
		{ErrNoDirectory, 404},
		{ErrNotText, 404},
		{errors.New("disk full"), 500},
	}
	for _, c := range cases {
		if got := StatusForError(c.err); got != c.want {
			t.Fatalf("StatusForError(%v)=%d, want %d", c.err, got, c.want)
		}
	}
}

func TestReadRequest(t *testing.T) {
	r, err := ReadRequest([]byte("GET /echo/x HTTP/1.1\r\nX-Request-Id: abc\r\nPath: /other\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Method != "GET" || r.Path != "/echo/x" || r.Proto != "HTTP/1.1" {
		t.Fatalf("request line: %q %q %q", r.Method, r.Path, r.Proto)
	}
	if r.Header.Get("X-Request-Id") != "abc" || r.Header.Get("Path") != "/other" {
		t.Fatalf("header=%v", r.Header)
	}
	if _, ok := RequestIDFrom(r.Context()); ok {
		t.Fatal("parsed request already carries a request ID")
	}
	if _, err := ReadRequest([]byte("GET\r\n\r\n")); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("err=%v, want ErrBadRequest", err)
	}
}

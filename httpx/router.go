package httpx

import (
	"strconv"
	"strings"

	"github.com/aleksandar-had/http-server/internal/obs"
)

type Handler interface {
	ServeHTTP(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) ServeHTTP(r *Request) *Response {
	return f(r)
}

// route matches on the request path; the first matching route wins.
type route struct {
	name  string
	match func(path string) bool
	h     HandlerFunc
}

// Router dispatches to the fixed set of routes: "/", "/echo/{text}",
// "/files/{name}", "/user-agent". Everything else is 404.
type Router struct {
	Files  *FileStore
	Logger obs.Logger
	Meter  obs.Meter

	routes []route
}

// NewRouter returns a Router serving files from fs. fs may be nil, in
// which case the files route answers 404.
func NewRouter(fs *FileStore, logger obs.Logger, meter obs.Meter) *Router {
	if logger == nil {
		logger = obs.NopLogger{}
	}
	if meter == nil {
		meter = obs.NopMeter{}
	}
	rt := &Router{Files: fs, Logger: logger, Meter: meter}
	rt.routes = []route{
		{"root", exact("/"), rt.root},
		{"echo", prefix("/echo"), rt.echo},
		{"files", prefix("/files"), rt.files},
		{"user-agent", exact("/user-agent"), rt.userAgent},
	}
	return rt
}

func exact(p string) func(string) bool {
	return func(path string) bool { return path == p }
}

func prefix(p string) func(string) bool {
	return func(path string) bool { return strings.HasPrefix(path, p) }
}

var notFoundRoute = route{name: "not_found", h: notFound}

func (rt *Router) lookup(path string) route {
	for _, r := range rt.routes {
		if r.match(path) {
			return r
		}
	}
	return notFoundRoute
}

// Route returns the name of the route path dispatches to.
func (rt *Router) Route(path string) string {
	return rt.lookup(path).name
}

func (rt *Router) ServeHTTP(r *Request) *Response {
	rr := rt.lookup(r.Path)
	res := rr.h(r)
	if res == nil {
		res = NewResponse(500)
	}
	rt.Meter.Counter("httpx_requests_total", 1,
		obs.Label{Key: "route", Value: rr.name},
		obs.Label{Key: "status", Value: strconv.Itoa(res.StatusCode)})
	rt.Logger.Logf(obs.Debug, "%s %s %s route=%s status=%d", logTag(r.Context()), r.Method, r.Path, rr.name, res.StatusCode)
	return res
}

func (rt *Router) root(r *Request) *Response {
	return NewResponse(200)
}

func (rt *Router) echo(r *Request) *Response {
	text := []byte(strings.TrimPrefix(r.Path, "/echo/"))
	enc, ok := r.Header.Lookup("Accept-Encoding")
	if !ok {
		enc = noEncoding
	}
	if !SupportsGzip(enc) {
		return Text(200, "text/plain", text)
	}
	z, err := Gzip(text)
	if err != nil {
		rt.Logger.Logf(obs.Error, "%s gzip: %v", logTag(r.Context()), err)
		return NewResponse(500)
	}
	res := NewResponse(200)
	res.Set("Content-Type", "text/plain")
	res.Set("Content-Encoding", encodingGzip)
	res.Set("Content-Length", strconv.Itoa(len(z)))
	res.Body = z
	return res
}

func (rt *Router) files(r *Request) *Response {
	name := strings.TrimPrefix(r.Path, "/files/")
	res, err := rt.Files.Handle(r.Method, r.Body, name)
	if err != nil {
		lvl := obs.Debug
		if res.StatusCode >= 500 {
			lvl = obs.Error
		}
		rt.Logger.Logf(lvl, "%s %s %s: %v", logTag(r.Context()), r.Method, name, err)
	}
	return res
}

func (rt *Router) userAgent(r *Request) *Response {
	ua, ok := r.Header.Lookup("User-Agent")
	if !ok {
		rt.Logger.Logf(obs.Debug, "%s %v: User-Agent", logTag(r.Context()), ErrMissingHeader)
		return NewResponse(StatusForError(ErrMissingHeader))
	}
	return Text(200, "text/plain", []byte(ua))
}

func notFound(*Request) *Response {
	return NewResponse(404)
}

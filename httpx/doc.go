// Package httpx is a deliberately small HTTP/1.1 server: one request per
// TCP connection, a fixed pool of workers, and a fixed set of routes.
//
// Routes
//   - GET /                 200, empty body
//   - /echo/{text}          200, echoes text; gzip when Accept-Encoding lists it
//   - GET /files/{name}     200 with the file, or 404
//   - POST /files/{name}    201, stores the request body
//   - /user-agent           200 with the User-Agent header, 400 without one
//   - anything else         404
//
// Each connection is read once into a fixed-size buffer, answered and
// closed. There is no keep-alive, chunked encoding or TLS.
//
// Quick start:
//
//	s := httpx.NewServer(httpx.Config{Directory: "/tmp/files"}, nil, nil)
//	go func() { _ = s.ListenAndServe() }()
//	// ...
//	_ = s.Shutdown(context.Background())
package httpx

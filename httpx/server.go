package httpx

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/aleksandar-had/http-server/internal/obs"
)

// Server accepts connections and serves exactly one request on each with a
// fixed pool of workers.
type Server struct {
	// Handler answers parsed requests. NewServer sets it to a Router.
	Handler Handler

	cfg    Config
	logger obs.Logger
	meter  obs.Meter

	mu       sync.Mutex
	ln       net.Listener
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	// conns holds connections a worker is serving. Once forced is set,
	// Shutdown has closed them all and new ones are closed on arrival.
	conns  map[net.Conn]struct{}
	forced bool
}

// NewServer builds a server for cfg, filling unset fields with defaults.
// logger and meter may be nil.
func NewServer(cfg Config, logger obs.Logger, meter obs.Meter) *Server {
	if logger == nil {
		logger = obs.NopLogger{}
	}
	if meter == nil {
		meter = obs.NopMeter{}
	}
	cfg = cfg.withDefaults()
	var fs *FileStore
	if cfg.Directory != "" {
		fs = &FileStore{Dir: cfg.Directory}
	}
	return &Server{
		Handler: NewRouter(fs, logger, meter),
		cfg:     cfg,
		logger:  logger,
		meter:   meter,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Config returns the configuration the server runs with.
func (s *Server) Config() Config { return s.cfg }

// Addr returns the listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until Shutdown. It always returns a
// non-nil error; after Shutdown that is ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	select {
	case <-s.quit:
		s.mu.Unlock()
		_ = l.Close()
		return ErrServerClosed
	default:
	}
	if s.ln != nil {
		s.mu.Unlock()
		return errors.New("httpx: Serve called twice")
	}
	s.ln = l
	s.mu.Unlock()
	defer l.Close()

	pool := newWorkerPool(s.cfg.Workers, s.cfg.QueueSize, s.serveConn)
	defer func() {
		pool.close()
		s.logger.Logf(obs.Info, "server on %s stopped", l.Addr())
		close(s.done)
	}()
	s.logger.Logf(obs.Info, "listening on %s workers=%d", l.Addr(), s.cfg.Workers)

	var delay time.Duration
	for {
		c, err := l.Accept()
		if err != nil {
			if s.closing() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			delay = nextAcceptDelay(delay)
			s.meter.Counter("httpx_accept_errors_total", 1)
			s.logger.Logf(obs.Warn, "accept: %v; retrying in %v", err, delay)
			time.Sleep(delay)
			continue
		}
		delay = 0
		s.meter.Counter("httpx_connections_total", 1)
		if !pool.submit(c, s.quit) {
			_ = c.Close()
			return ErrServerClosed
		}
	}
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}

func (s *Server) closing() bool {
	select {
	case <-s.quit:
		return true
	default:
		return false
	}
}

// Shutdown stops accepting connections and waits until every queued and
// in-flight connection has been answered. If ctx ends first, the remaining
// connections are closed so that blocked workers return, and ctx.Err() is
// returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.quitOnce.Do(func() { close(s.quit) })
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil
	}
	_ = ln.Close()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		if n := s.closeConns(); n > 0 {
			s.logger.Logf(obs.Warn, "shutdown: %v; closed %d active connections", ctx.Err(), n)
		}
		return ctx.Err()
	}
}

func (s *Server) trackConn(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrackConn(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// closeConns closes every tracked connection and makes trackConn refuse
// new ones. It returns how many were closed.
func (s *Server) closeConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = true
	for c := range s.conns {
		_ = c.Close()
	}
	return len(s.conns)
}

// serveConn owns c: one read, one response, close. Failures stay local to
// the connection.
func (s *Server) serveConn(worker int, c net.Conn) {
	if !s.trackConn(c) {
		_ = c.Close()
		return
	}
	defer s.untrackConn(c)
	start := time.Now()
	id := genID()
	status := 0
	defer func() {
		if p := recover(); p != nil {
			s.logger.Logf(obs.Error, "req=%s worker=%d panic: %v", id, worker, p)
			if status == 0 {
				status = 500
				_, _ = NewResponse(500).WriteTo(c)
			}
		}
		_ = c.Close()
		s.meter.Histogram("httpx_request_duration_seconds", time.Since(start).Seconds(),
			obs.Label{Key: "status", Value: strconv.Itoa(status)})
	}()

	remote := remoteAddr(c)
	s.logger.Logf(obs.Debug, "req=%s worker=%d accepted %s", id, worker, remote)

	if s.cfg.ReadTimeout > 0 {
		_ = c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	buf := make([]byte, s.cfg.ReadBufferSize)
	n, err := c.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.logger.Logf(obs.Warn, "req=%s read from %s: %v", id, remote, err)
		} else {
			s.logger.Logf(obs.Debug, "req=%s %s closed without sending a request", id, remote)
		}
		return
	}

	var res *Response
	req, err := ReadRequest(buf[:n])
	if err != nil {
		s.logger.Logf(obs.Info, "req=%s from %s: %v", id, remote, err)
		res = NewResponse(StatusForError(err))
	} else {
		req.RemoteAddr = remote
		ctx := WithRequestID(context.Background(), id)
		if cid := req.Header.Get("X-Request-Id"); cid != "" {
			ctx = WithCorrelationID(ctx, cid)
		}
		res = s.Handler.ServeHTTP(WithContext(req, ctx))
		if res == nil {
			res = NewResponse(500)
		}
	}

	if s.cfg.WriteTimeout > 0 {
		_ = c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	status = res.StatusCode
	bw := bufio.NewWriter(c)
	_, err = res.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		s.logger.Logf(obs.Warn, "req=%s write to %s: %v", id, remote, err)
	}
}

func remoteAddr(c net.Conn) string {
	if a := c.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}

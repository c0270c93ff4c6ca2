package httpx

import "time"

const (
	DefaultAddr           = "127.0.0.1:4221"
	DefaultWorkers        = 5
	DefaultReadBufferSize = 1024
)

// Config is fixed once the server is built.
type Config struct {
	// Addr is the listen address for ListenAndServe.
	Addr string
	// Directory is the base directory for the files route. Empty disables
	// the route (it answers 404).
	Directory string
	// Workers is the number of connections served at once.
	Workers int
	// QueueSize bounds accepted connections waiting for a worker.
	// Defaults to Workers.
	QueueSize int
	// ReadBufferSize is the size of the single read per connection;
	// anything beyond it is not seen.
	ReadBufferSize int
	// ReadTimeout and WriteTimeout are per-connection deadlines. Zero
	// means none.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = c.Workers
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	return c
}

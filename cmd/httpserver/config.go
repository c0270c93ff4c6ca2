package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aleksandar-had/http-server/httpx"
)

type options struct {
	cfg   httpx.Config
	debug bool
}

// parseArgs reads the command line without the program name. The usual
// invocation is `httpserver --directory <dir>`; a lone positional
// directory is accepted too.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("httpserver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.cfg.Directory, "directory", "", "base directory for /files/{name}")
	fs.StringVar(&o.cfg.Addr, "addr", httpx.DefaultAddr, "listen address")
	fs.IntVar(&o.cfg.Workers, "workers", httpx.DefaultWorkers, "number of connection workers")
	fs.IntVar(&o.cfg.ReadBufferSize, "read-buffer", httpx.DefaultReadBufferSize, "bytes read per request")
	fs.DurationVar(&o.cfg.ReadTimeout, "read-timeout", 0, "per-connection read deadline (0 disables)")
	fs.DurationVar(&o.cfg.WriteTimeout, "write-timeout", 0, "per-connection write deadline (0 disables)")
	fs.BoolVar(&o.debug, "debug", false, "development logging at debug level")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	rest := fs.Args()
	if o.cfg.Directory == "" && len(rest) > 0 {
		o.cfg.Directory, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return o, fmt.Errorf("unexpected arguments: %q", rest)
	}
	if o.cfg.Workers <= 0 {
		return o, errors.New("--workers must be positive")
	}
	if o.cfg.ReadBufferSize <= 0 {
		return o, errors.New("--read-buffer must be positive")
	}
	if o.cfg.Directory != "" {
		fi, err := os.Stat(o.cfg.Directory)
		if err != nil {
			return o, fmt.Errorf("directory: %w", err)
		}
		if !fi.IsDir() {
			return o, fmt.Errorf("directory: %s is not a directory", o.cfg.Directory)
		}
	}
	return o, nil
}

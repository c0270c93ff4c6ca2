package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aleksandar-had/http-server/internal/obs"
)

func TestParseArgs_DirectoryFlag(t *testing.T) {
	dir := t.TempDir()
	o, err := parseArgs([]string{"--directory", dir}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Directory != dir || o.cfg.Addr != "127.0.0.1:4221" || o.cfg.Workers != 5 {
		t.Fatalf("cfg=%+v", o.cfg)
	}
}

func TestParseArgs_Positional(t *testing.T) {
	dir := t.TempDir()
	o, err := parseArgs([]string{"-workers", "2", dir}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Directory != dir || o.cfg.Workers != 2 {
		t.Fatalf("cfg=%+v", o.cfg)
	}
}

func TestParseArgs_NoDirectory(t *testing.T) {
	o, err := parseArgs(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Directory != "" || o.debug {
		t.Fatalf("opts=%+v", o)
	}
}

func TestParseArgs_Options(t *testing.T) {
	o, err := parseArgs([]string{"-addr", "127.0.0.1:0", "-read-timeout", "2s", "-read-buffer", "4096", "-debug"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Addr != "127.0.0.1:0" || o.cfg.ReadTimeout != 2*time.Second || o.cfg.ReadBufferSize != 4096 || !o.debug {
		t.Fatalf("opts=%+v", o)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cases := [][]string{
		{"--directory", filepath.Join(dir, "missing")},
		{"--directory", file},
		{"--workers", "0"},
		{"--read-buffer", "-1"},
		{"--bogus"},
		{dir, "extra"},
	}
	for _, args := range cases {
		if _, err := parseArgs(args, io.Discard); err == nil {
			t.Fatalf("%q: expected error", args)
		}
	}
}

func TestLogMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := obs.NewMemoryMeter()
	m.Counter("b", 1)
	m.Counter("a", 2)
	m.Histogram("h", 0.5)
	logMetrics(zap.New(core), m)

	entries := logs.FilterMessage("counter").AllUntimed()
	if len(entries) != 2 || entries[0].ContextMap()["series"] != "a" {
		t.Fatalf("counter entries=%v", entries)
	}
	if logs.FilterMessage("histogram").Len() != 1 {
		t.Fatalf("histogram entries=%d", logs.FilterMessage("histogram").Len())
	}
}

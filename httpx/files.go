package httpx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// FileStore reads and writes files under Dir for the files route.
type FileStore struct {
	Dir string
}

// Resolve returns the on-disk path for name. name must be a local path:
// no "..", not absolute.
func (fs *FileStore) Resolve(name string) (string, error) {
	if fs == nil || fs.Dir == "" {
		return "", ErrNoDirectory
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, name)
	}
	return filepath.Join(fs.Dir, name), nil
}

// Read returns the contents of name. The file must hold valid UTF-8.
func (fs *FileStore) Read(name string) ([]byte, error) {
	p, err := fs.Resolve(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: %s", ErrNotText, name)
	}
	return b, nil
}

// Write creates or truncates name and writes body to it.
func (fs *FileStore) Write(name string, body []byte) error {
	p, err := fs.Resolve(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, body, 0o644)
}

// Handle answers a request on the files route. Every GET failure is a
// 404; a failed write is a 500.
func (fs *FileStore) Handle(method string, body []byte, name string) (*Response, error) {
	switch method {
	case "GET":
		b, err := fs.Read(name)
		if err != nil {
			if errors.Is(err, ErrPathEscapes) {
				return NewResponse(400), err
			}
			return NewResponse(404), err
		}
		return Text(200, "application/octet-stream", b), nil
	case "POST":
		if err := fs.Write(name, body); err != nil {
			return NewResponse(StatusForError(err)), err
		}
		return NewResponse(201), nil
	default:
		return NewResponse(404), fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

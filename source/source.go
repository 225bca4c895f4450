// Package source loads the full text of a record table given a logical path.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotFound is returned when no file matches a logical path.
var ErrNotFound = errors.New("source not found")

// LoadError reports a source that could not be located or read.
type LoadError struct {
	Path string
	Err  error
}

// Error formats the load error with the requested path.
func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("source: load %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying Err.
func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Provider returns the whole text content stored under a logical path.
type Provider interface {
	Load(path string) (string, error)
}

// Func adapts a function to Provider.
type Func func(path string) (string, error)

// Load calls f.
func (f Func) Load(path string) (string, error) { return f(path) }

// Memory serves text from a map, keyed by logical path.
type Memory map[string]string

// Load returns the text stored under p.
func (m Memory) Load(p string) (string, error) {
	text, ok := m[p]
	if !ok {
		return "", &LoadError{Path: p, Err: fmt.Errorf("%w: %w", ErrNotFound, fs.ErrNotExist)}
	}

	return text, nil
}

// DefaultExtensions are tried, in order, after the logical path itself.
var DefaultExtensions = []string{".csv", ".txt"}

// FS loads sources from a file system. Logical paths may omit the file
// extension, like resource names do.
type FS struct {
	fsys       fs.FS
	extensions []string
	encoding   encoding.Encoding
}

// Option configures an FS provider.
type Option func(*FS)

// WithExtensions replaces the extensions tried after the logical path.
func WithExtensions(exts ...string) Option {
	return func(p *FS) {
		p.extensions = exts
	}
}

// WithEncoding decodes files from enc instead of UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(p *FS) {
		p.encoding = enc
	}
}

// Encoding looks up an encoding by its WHATWG name or label, e.g. "shift_jis".
func Encoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("source: encoding %q: %w", name, err)
	}

	return enc, nil
}

// NewFS creates a provider reading from fsys.
func NewFS(fsys fs.FS, opts ...Option) *FS {
	p := &FS{
		fsys:       fsys,
		extensions: DefaultExtensions,
		encoding:   unicode.UTF8,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Dir creates a provider reading from the directory dir.
func Dir(dir string, opts ...Option) *FS {
	return NewFS(os.DirFS(dir), opts...)
}

// Load reads and decodes the first file matching the logical path. A byte
// order mark, if any, is stripped.
func (p *FS) Load(logical string) (string, error) {
	name := strings.TrimPrefix(path.Clean("/"+logical), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", &LoadError{Path: logical, Err: fs.ErrInvalid}
	}

	candidates := make([]string, 0, len(p.extensions)+1)
	candidates = append(candidates, name)
	for _, ext := range p.extensions {
		candidates = append(candidates, name+ext)
	}

	for _, candidate := range candidates {
		// a folder named like the table, as resource folders often are
		info, err := fs.Stat(p.fsys, candidate)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}

		data, err := fs.ReadFile(p.fsys, candidate)
		if err != nil {
			return "", &LoadError{Path: logical, Err: err}
		}

		text, _, err := transform.Bytes(unicode.BOMOverride(p.encoding.NewDecoder()), data)
		if err != nil {
			return "", &LoadError{Path: logical, Err: fmt.Errorf("decoding %s: %w", candidate, err)}
		}

		return string(text), nil
	}

	return "", &LoadError{Path: logical, Err: fmt.Errorf("%w: %w", ErrNotFound, fs.ErrNotExist)}
}

package archive

import (
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zip"
)

// ErrEntryNotFound is returned when the archive has no entry with the requested name.
var ErrEntryNotFound = errors.New("archive entry not found")

// Provider is a read-only expansion pack. It is opened once and safe for
// concurrent reads. Recently read entries are kept in an LRU.
type Provider struct {
	path    string
	closer  io.Closer
	files   map[string]*zip.File
	names   []string
	entries *lru.Cache[string, []byte]
}

// Open opens the archive at cfg.Path.
func Open(cfg Config) (*Provider, error) {
	if cfg.Path == "" {
		return nil, errors.New("archive path is empty")
	}
	zr, err := zip.OpenReader(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", cfg.Path, err)
	}
	p, err := newProvider(&zr.Reader, cfg.EntryCacheSize)
	if err != nil {
		_ = zr.Close()
		return nil, err
	}
	p.path = cfg.Path
	p.closer = zr
	return p, nil
}

// NewReader builds a provider over an in-memory or already open archive.
func NewReader(r io.ReaderAt, size int64, entryCacheSize int) (*Provider, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return newProvider(zr, entryCacheSize)
}

func newProvider(zr *zip.Reader, entryCacheSize int) (*Provider, error) {
	p := &Provider{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := normalize(f.Name)
		p.files[name] = f
		p.names = append(p.names, name)
	}
	sort.Strings(p.names)

	if entryCacheSize > 0 {
		c, err := lru.New[string, []byte](entryCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create entry cache: %w", err)
		}
		p.entries = c
	}
	return p, nil
}

func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// Path returns the file the archive was opened from, if any.
func (p *Provider) Path() string {
	return p.path
}

// Len returns the number of file entries.
func (p *Provider) Len() int {
	return len(p.names)
}

// Names returns the entry names, sorted.
func (p *Provider) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Has reports whether name is an entry of the archive.
func (p *Provider) Has(name string) bool {
	_, ok := p.files[normalize(name)]
	return ok
}

// Open streams the entry called name.
func (p *Provider) Open(name string) (io.ReadCloser, error) {
	f, ok := p.files[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return f.Open()
}

// ReadFile returns the decompressed contents of name. The returned slice
// may be shared with other callers and must not be modified.
func (p *Provider) ReadFile(name string) ([]byte, error) {
	key := normalize(name)
	if p.entries != nil {
		if data, ok := p.entries.Get(key); ok {
			return data, nil
		}
	}

	rc, err := p.Open(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %s: %w", name, err)
	}
	if p.entries != nil {
		p.entries.Add(key, data)
	}
	return data, nil
}

// Close releases the underlying file.
func (p *Provider) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

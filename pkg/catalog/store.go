package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
)

var (
	//go:embed data/catalog-v1.yaml
	catalogData []byte

	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error

	// current is the catalog snapshot in use by the process. It is only ever
	// replaced as a whole so in-flight readers keep a consistent view.
	current atomic.Pointer[Catalog]
)

// Default returns the catalog compiled into the binary.
// The embedded data is parsed and validated once; the result (or the error)
// is reused for the lifetime of the process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		c, err := Parse(catalogData)
		if err != nil {
			defaultErr = fmt.Errorf("failed to load embedded catalog: %w", err)
			return
		}
		defaultCatalog = c
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	if defaultCatalog == nil {
		return nil, adverrors.New(adverrors.ErrCodeInternal, "platform catalog not initialized")
	}
	return defaultCatalog, nil
}

// Current returns the catalog snapshot installed with Swap, or the embedded
// default when none has been installed.
func Current() (*Catalog, error) {
	if c := current.Load(); c != nil {
		return c, nil
	}
	return Default()
}

// Swap installs c as the current catalog and returns the previous snapshot.
// Callers holding the previous snapshot keep using it unchanged.
func Swap(c *Catalog) *Catalog {
	prev := current.Swap(c)
	if c != nil {
		slog.Info("platform catalog replaced",
			"version", c.Version,
			"platforms", len(c.Platforms),
			"patterns", len(c.Patterns),
		)
	}
	return prev
}

// Parse decodes and validates a catalog document. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeInvalidCatalogData, "failed to decode catalog", err)
	}

	if err := c.Validate(DefaultValidationRules()); err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeInvalidCatalogData, "catalog failed validation", err)
	}

	c.buildIndex()

	slog.Debug("parsed platform catalog",
		"version", c.Version,
		"platforms", len(c.Platforms),
		"patterns", len(c.Patterns),
	)

	return &c, nil
}

// LoadFile reads and parses a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %q: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

// Marshal renders c as a catalog YAML document.
func Marshal(c *Catalog) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Source loads catalog documents from somewhere other than the binary.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*Catalog, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) (*Catalog, error) {
	return f(ctx)
}

// FileSource returns a Source reading the catalog at path.
func FileSource(path string) Source {
	return SourceFunc(func(_ context.Context) (*Catalog, error) {
		return LoadFile(path)
	})
}

// Reload loads a catalog from src and installs it with Swap. On failure the
// current snapshot stays in place.
func Reload(ctx context.Context, src Source) (*Catalog, error) {
	c, err := src.Load(ctx)
	if err != nil {
		catalogReloadTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	Swap(c)
	catalogReloadTotal.WithLabelValues("success").Inc()
	return c, nil
}

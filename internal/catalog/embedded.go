// internal/catalog/embedded.go
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/providers.yaml
var embeddedProviders []byte

// EmbeddedSource serves the catalog compiled into the binary. The YAML is
// parsed once on first use.
type EmbeddedSource struct {
	once sync.Once
	data *Data
	err  error
}

func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Name() string { return "embedded" }

func (s *EmbeddedSource) Load(_ context.Context) (*Data, error) {
	s.once.Do(func() {
		s.data, s.err = parseYAML(embeddedProviders)
	})
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.data
	return &cp, nil
}

// Default builds a Catalog from the embedded data.
func Default() (*Catalog, error) {
	data, err := NewEmbeddedSource().Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: embedded: %v", ErrCatalogLoadFailed, err)
	}
	return New(data, 0)
}

func parseYAML(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &d, nil
}

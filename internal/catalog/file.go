// internal/catalog/file.go
package catalog

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a catalog YAML document from disk, in the same layout as
// the embedded catalog.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(_ context.Context) (*Data, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return parseYAML(raw)
}

// internal/catalog/catalog.go
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/common/metrics"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
	"github.com/ThanushaGali/CaConnect/internal/models"
)

var (
	ErrCatalogLoadFailed = errors.New("CATALOG_LOAD_FAILED")
	ErrCatalogInvalid    = errors.New("CATALOG_INVALID")
	ErrQueryFailed       = errors.New("QUERY_EXECUTION_FAILED")
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrIndexNotFound     = errors.New("INDEX_NOT_FOUND")
)

// Data is the raw content a Source produces: provider records plus the
// domain and location vocabularies offered as filter choices.
type Data struct {
	Domains   []string           `yaml:"domains" json:"domains"`
	Locations []string           `yaml:"locations" json:"locations"`
	Providers []*models.Provider `yaml:"providers" json:"providers"`
}

// Source reads catalog data from one backing store.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Data, error)
}

// Catalog is an immutable, validated provider snapshot.
type Catalog struct {
	providers []*models.Provider
	byID      map[string]*models.Provider
	domains   []string
	locations []string
	version   string
}

// New validates data and freezes it into a Catalog. Vocabulary entries missing
// from data are derived from the provider records in first-seen order. A
// non-positive maxProviders means no limit.
func New(data *Data, maxProviders int) (*Catalog, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data", ErrCatalogInvalid)
	}
	if maxProviders > 0 && len(data.Providers) > maxProviders {
		return nil, fmt.Errorf("%w: %d providers exceeds limit %d", ErrCatalogInvalid, len(data.Providers), maxProviders)
	}

	c := &Catalog{
		providers: make([]*models.Provider, 0, len(data.Providers)),
		byID:      make(map[string]*models.Provider, len(data.Providers)),
	}

	domains := newVocabulary()
	locations := newVocabulary()
	for _, d := range data.Domains {
		if err := domains.add(d); err != nil {
			return nil, fmt.Errorf("%w: domain vocabulary: %v", ErrCatalogInvalid, err)
		}
	}
	for _, l := range data.Locations {
		if err := locations.add(l); err != nil {
			return nil, fmt.Errorf("%w: location vocabulary: %v", ErrCatalogInvalid, err)
		}
	}

	for i, p := range data.Providers {
		if p == nil {
			return nil, fmt.Errorf("%w: provider %d is empty", ErrCatalogInvalid, i)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate provider id %s", ErrCatalogInvalid, p.ID)
		}
		for _, d := range p.Domains {
			if err := domains.add(d); err != nil {
				return nil, fmt.Errorf("%w: provider %s: %v", ErrCatalogInvalid, p.ID, err)
			}
		}
		if p.Location != "" {
			if err := locations.add(p.Location); err != nil {
				return nil, fmt.Errorf("%w: provider %s: %v", ErrCatalogInvalid, p.ID, err)
			}
		}
		c.providers = append(c.providers, p)
		c.byID[p.ID] = p
	}

	c.domains = domains.values
	c.locations = locations.values

	version, err := fingerprint(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}
	c.version = version
	return c, nil
}

// Load reads src and builds a Catalog from it.
func Load(ctx context.Context, src Source, maxProviders int, log logger.Logger) (*Catalog, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogLoadFailed, src.Name(), err)
	}
	c, err := New(data, maxProviders)
	if err != nil {
		return nil, err
	}

	metrics.CatalogProviders.Set(float64(c.Len()))
	log.Info("catalog loaded", map[string]interface{}{
		"source":    src.Name(),
		"providers": c.Len(),
		"domains":   len(c.domains),
		"locations": len(c.locations),
		"version":   c.version,
	})
	return c, nil
}

// Providers returns the records in catalog order. The slice is a fresh copy;
// the records themselves are shared and must not be modified.
func (c *Catalog) Providers() []*models.Provider {
	out := make([]*models.Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

func (c *Catalog) Get(id string) (*models.Provider, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Domains() []string {
	return append([]string(nil), c.domains...)
}

func (c *Catalog) Locations() []string {
	return append([]string(nil), c.locations...)
}

// Version is a content hash of the data the catalog was built from.
func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Len() int { return len(c.providers) }

type vocabulary struct {
	values []string
	seen   map[string]bool
}

func newVocabulary() *vocabulary {
	return &vocabulary{seen: make(map[string]bool)}
}

func (v *vocabulary) add(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("blank entry")
	}
	if value == discovery.Any {
		return fmt.Errorf("%q is reserved", discovery.Any)
	}
	if v.seen[value] {
		return nil
	}
	v.seen[value] = true
	v.values = append(v.values, value)
	return nil
}

func fingerprint(data *Data) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:6]), nil
}

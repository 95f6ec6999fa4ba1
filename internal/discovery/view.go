// internal/discovery/view.go
package discovery

import (
	"fmt"
	"strings"

	"github.com/ThanushaGali/CaConnect/internal/models"
)

// ViewMode is the presentation layout. It never changes filter or sort output.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"

	DefaultViewMode = ViewList
)

func ParseViewMode(raw string) (ViewMode, error) {
	switch m := ViewMode(strings.TrimSpace(raw)); m {
	case "":
		return DefaultViewMode, nil
	case ViewList, ViewGrid:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown view mode %q", ErrInvalidFilter, raw)
	}
}

func (m ViewMode) Toggle() ViewMode {
	if m == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

// BadgeLimit is how many domain badges a card shows in this layout.
func (m ViewMode) BadgeLimit() int {
	if m == ViewGrid {
		return 2
	}
	return 3
}

// DomainBadges splits a provider's domains into the badges shown on its card
// and the number folded into a "+N" badge.
func DomainBadges(p *models.Provider, mode ViewMode) (visible []string, overflow int) {
	limit := mode.BadgeLimit()
	if len(p.Domains) <= limit {
		return p.Domains, 0
	}
	return p.Domains[:limit], len(p.Domains) - limit
}

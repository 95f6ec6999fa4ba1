// internal/discovery/browser.go
package discovery

import "github.com/ThanushaGali/CaConnect/internal/models"

// Result is everything a discovery view renders for one state.
type Result struct {
	Providers     []*models.Provider `json:"providers"`
	ActiveFilters []ActiveFilter     `json:"activeFilters"`
	Search        *ActiveFilter      `json:"search,omitempty"`
	Total         int                `json:"total"`
	Empty         bool               `json:"empty"`
	CanClear      bool               `json:"canClear"`
}

// Apply runs the full pipeline: filter, rank, then project the chips.
func Apply(providers []*models.Provider, f FilterState, key SortKey) Result {
	ranked := Rank(Filter(providers, f), key)

	res := Result{
		Providers:     ranked,
		ActiveFilters: ActiveFilters(f),
		Total:         len(ranked),
		Empty:         len(ranked) == 0,
		CanClear:      !f.IsDefault(),
	}
	if chip, ok := SearchFilter(f); ok {
		res.Search = &chip
	}
	return res
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithObserver registers fn to receive every recomputed Result.
func WithObserver(fn func(Result)) BrowserOption {
	return func(b *Browser) { b.observer = fn }
}

// WithInitialState seeds the browser with a state other than the default.
func WithInitialState(f FilterState, key SortKey) BrowserOption {
	return func(b *Browser) {
		b.state = f
		b.sort = key
	}
}

// Browser holds the filter, sort and view state of one discovery view and keeps
// its Result in step with it. It is owned by a single goroutine.
type Browser struct {
	providers []*models.Provider
	state     FilterState
	sort      SortKey
	view      ViewMode
	result    Result
	observer  func(Result)
}

func NewBrowser(providers []*models.Provider, opts ...BrowserOption) *Browser {
	b := &Browser{
		providers: providers,
		state:     DefaultFilterState(),
		sort:      DefaultSortKey,
		view:      DefaultViewMode,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.result = Apply(b.providers, b.state, b.sort)
	return b
}

func (b *Browser) State() FilterState { return b.state }
func (b *Browser) Sort() SortKey { return b.sort }
func (b *Browser) View() ViewMode { return b.view }
func (b *Browser) Result() Result { return b.result }

func (b *Browser) SetQuery(q string) { b.transition(b.state.WithQuery(q), b.sort) }
func (b *Browser) SetDomain(d string) { b.transition(b.state.WithDomain(d), b.sort) }
func (b *Browser) SetLocation(l string) { b.transition(b.state.WithLocation(l), b.sort) }
func (b *Browser) SetMinExperience(y int) { b.transition(b.state.WithMinExperience(y), b.sort) }
func (b *Browser) SetMinRating(r float64) { b.transition(b.state.WithMinRating(r), b.sort) }
func (b *Browser) SetSort(key SortKey) { b.transition(b.state, key) }
func (b *Browser) Remove(key FilterKey) { b.transition(b.state.Without(key), b.sort) }
func (b *Browser) ClearAll() { b.transition(b.state.Cleared(), b.sort) }
func (b *Browser) SetView(mode ViewMode) { b.view = mode }
func (b *Browser) ToggleView() { b.view = b.view.Toggle() }

// transition swaps in the next state and publishes exactly one Result.
func (b *Browser) transition(next FilterState, key SortKey) {
	b.state = next
	b.sort = key
	b.result = Apply(b.providers, b.state, b.sort)
	if b.observer != nil {
		b.observer(b.result)
	}
}

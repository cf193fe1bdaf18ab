package student

import (
	"context"
	"sync"

	"github.com/jogaaurora/aurora/core"
)

// SearchOptions drives a search. A nil Page resets to the first page.
type SearchOptions struct {
	Filter Filter
	Page   *int
	Size   int
}

// SearchState is the current filter, position and last fetched page.
type SearchState struct {
	Filter Filter
	Page   int
	Size   int
	Result *core.Page[Student]
}

// Search is the single owner of the student search state.
// Overlapping calls are not sequenced: the last response to arrive wins.
type Search struct {
	svc    *Service
	logger core.Logger

	mu    sync.RWMutex
	state SearchState
}

func NewSearch(svc *Service, logger core.Logger) *Search {
	return &Search{svc: svc, logger: logger, state: SearchState{Size: core.DefaultPageSize}}
}

func (s *Search) State() SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Search replaces the current filter with opts.Filter, unless it is zero, and fetches.
func (s *Search) Search(ctx context.Context, opts SearchOptions) (SearchState, error) {
	s.mu.Lock()
	if !opts.Filter.IsZero() {
		s.state.Filter = opts.Filter
	}
	s.state.Page = 0
	if opts.Page != nil {
		s.state.Page = *opts.Page
	}
	if opts.Size > 0 {
		s.state.Size = opts.Size
	}
	s.mu.Unlock()
	return s.fetch(ctx)
}

// Paginate fetches page with the current filter and size.
func (s *Search) Paginate(ctx context.Context, page int) (SearchState, error) {
	s.mu.Lock()
	s.state.Page = page
	s.mu.Unlock()
	return s.fetch(ctx)
}

// ChangePageSize fetches the first page with the new size.
func (s *Search) ChangePageSize(ctx context.Context, size int) (SearchState, error) {
	s.mu.Lock()
	s.state.Size = size
	s.state.Page = 0
	s.mu.Unlock()
	return s.fetch(ctx)
}

// Clear drops the filter and the cached page, without fetching again.
func (s *Search) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SearchState{Size: s.state.Size}
}

// fetch keeps the previous result in place when the request fails.
// On success the position follows what the backend actually returned.
func (s *Search) fetch(ctx context.Context) (SearchState, error) {
	st := s.State()
	page, err := s.svc.Query(ctx, core.PageRequest{Page: st.Page, Size: st.Size}, st.Filter)
	if err != nil {
		if s.logger != nil && s.logger.IsDebug() {
			s.logger.Debug("student search failed", err, map[string]interface{}{"page": st.Page, "size": st.Size})
		}
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Result = &page
	s.state.Page = page.Number
	if page.Size > 0 {
		s.state.Size = page.Size
	}
	return s.state, nil
}

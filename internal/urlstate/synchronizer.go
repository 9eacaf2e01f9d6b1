package urlstate

import (
	"net/url"

	"doctor-directory/internal/domain/entity"
)

// Writer replaces the current URL's query without navigating.
type Writer func(query url.Values)

// Synchronizer keeps one view's FilterState in step with its URL. Hydrate has
// to run before the first Dispatch, otherwise defaults would overwrite a
// deep-linked URL. Not safe for concurrent use; one per view.
type Synchronizer struct {
	write    Writer
	current  url.Values
	state    entity.FilterState
	hydrated bool
}

func NewSynchronizer(write Writer) *Synchronizer {
	if write == nil {
		write = func(url.Values) {}
	}
	return &Synchronizer{write: write}
}

// Hydrate seeds the state from the URL. Calling it again, for instance after
// a navigation, re-reads the new URL.
func (s *Synchronizer) Hydrate(values url.Values) entity.FilterState {
	s.current = values
	s.state = Decode(values)
	s.hydrated = true
	return s.state
}

func (s *Synchronizer) State() entity.FilterState {
	return s.state
}

// Query is the URL query currently reflected by the synchronizer.
func (s *Synchronizer) Query() url.Values {
	return Merge(s.current, s.state)
}

// Dispatch applies transition to the current state and writes the URL when
// its filter parameters change.
func (s *Synchronizer) Dispatch(transition func(entity.FilterState) entity.FilterState) (entity.FilterState, error) {
	if !s.hydrated {
		return s.state, ErrNotHydrated
	}

	next := transition(s.state)
	changed := !next.Equal(Decode(s.current))
	s.state = next

	if changed {
		s.current = Merge(s.current, next)
		s.write(s.current)
	}
	return s.state, nil
}

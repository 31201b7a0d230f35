package directory

// Change describes which part of the store a mutation touched.
type Change int

const (
	// ChangeFull means the full collection was replaced (options re-derived).
	ChangeFull Change = iota
	// ChangeCriteria means one or more criteria changed.
	ChangeCriteria
)

// Store is the single source of truth for the directory view: the full
// collection as last loaded and the active criteria. It never caches a
// filtered result; Filtered recomputes from (full, criteria) on every call.
//
// Store is owned by one event loop and is not safe for concurrent use.
type Store struct {
	full      []Participant
	loaded    bool
	criteria  Criteria
	options   FacetOptions
	gen       uint64
	listeners []func(Change)
}

// NewStore returns an empty store with no criteria.
func NewStore() *Store {
	return &Store{options: DeriveOptions(nil)}
}

// OnChange registers fn to run after every mutation.
func (s *Store) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// SetFull replaces the full collection wholesale and re-derives facet options.
func (s *Store) SetFull(full []Participant) {
	s.full = append([]Participant(nil), full...)
	s.loaded = true
	s.options = DeriveOptions(s.full)
	s.notify(ChangeFull)
}

// SetCriterion sets one facet's value. Setting the current value again is a no-op.
func (s *Store) SetCriterion(f Facet, value string) error {
	next, err := s.criteria.With(f, value)
	if err != nil {
		return err
	}
	if next == s.criteria {
		return nil
	}
	s.criteria = next
	s.notify(ChangeCriteria)
	return nil
}

// ClearAll resets every criterion to empty.
func (s *Store) ClearAll() {
	s.criteria = Criteria{}
	s.notify(ChangeCriteria)
}

// Criteria returns the active criteria.
func (s *Store) Criteria() Criteria { return s.criteria }

// Full returns the full collection. Callers must not modify it.
func (s *Store) Full() []Participant { return s.full }

// Total is the size of the full collection.
func (s *Store) Total() int { return len(s.full) }

// Loaded reports whether a collection has been committed at least once.
func (s *Store) Loaded() bool { return s.loaded }

// Filtered derives the visible collection from the full collection and criteria.
func (s *Store) Filtered() []Participant { return Apply(s.full, s.criteria) }

// Options returns the sorted option list for a selection facet. It only
// changes when the full collection does.
func (s *Store) Options(f Facet) []string { return s.options[f] }

// BeginLoad issues a new load generation. Only the response carrying the
// latest generation may be committed.
func (s *Store) BeginLoad() uint64 {
	s.gen++
	return s.gen
}

// Current reports whether gen is the most recently issued load generation.
func (s *Store) Current(gen uint64) bool { return gen == s.gen }

// CommitLoad stores full if gen is still the latest generation and reports
// whether it did. Responses to superseded loads are discarded.
func (s *Store) CommitLoad(gen uint64, full []Participant) bool {
	if !s.Current(gen) {
		return false
	}
	s.SetFull(full)
	return true
}

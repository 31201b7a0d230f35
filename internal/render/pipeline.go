package render

import (
	"github.com/jask/creatordir/internal/directory"
)

// Reason says why the results grid is empty.
type Reason int

const (
	// EmptyNoMatches: the directory has participants but none pass the criteria.
	EmptyNoMatches Reason = iota
	// EmptyDirectory: the directory itself has no participants.
	EmptyDirectory
	// EmptyLoadFailed: the last load failed.
	EmptyLoadFailed
)

const (
	msgNoMatches = "No participants match the current filters."
	msgEmptyDir  = "No participants have joined yet."
)

// Empty describes the empty-state panel.
type Empty struct {
	Reason  Reason
	Message string
	// Hint is an optional secondary line, e.g. a name suggestion.
	Hint          string
	Retry         bool
	CreateProfile bool
}

// Surface is the display the pipeline drives. Implementations own layout and
// styling; the pipeline only decides what is shown.
type Surface interface {
	Render(cards []Card)
	ShowEmpty(e Empty)
	SetStats(total, shown int)
}

// Context carries what the pipeline needs beyond the filtered collection.
type Context struct {
	// Total is the size of the full collection.
	Total int
	// LoadErr is the failure of the last load, if any.
	LoadErr error
	// Suggestion is a name hint offered when the name filter matched nothing.
	Suggestion    string
	DefaultAvatar string
}

// Grid pushes one rendering pass of filtered to s: either one card per
// participant in filtered order, or the matching empty state. Stats are
// updated on every pass.
func Grid(s Surface, filtered []directory.Participant, ctx Context) {
	switch {
	case ctx.LoadErr != nil:
		s.ShowEmpty(Empty{Reason: EmptyLoadFailed, Message: ctx.LoadErr.Error(), Retry: true})
	case len(filtered) == 0 && ctx.Total == 0:
		s.ShowEmpty(Empty{Reason: EmptyDirectory, Message: msgEmptyDir, CreateProfile: true})
	case len(filtered) == 0:
		e := Empty{Reason: EmptyNoMatches, Message: msgNoMatches}
		if ctx.Suggestion != "" {
			e.Hint = "Did you mean " + ctx.Suggestion + "?"
		}
		s.ShowEmpty(e)
	default:
		cards := make([]Card, 0, len(filtered))
		for _, p := range filtered {
			cards = append(cards, composeSafe(p, ctx.DefaultAvatar))
		}
		s.Render(cards)
	}
	s.SetStats(ctx.Total, len(filtered))
}

// composeSafe keeps one odd record from aborting the whole pass: if
// composition panics the card falls back to the bare name.
func composeSafe(p directory.Participant, defaultAvatar string) (c Card) {
	defer func() {
		if recover() != nil {
			c = Card{ID: p.ID, Name: p.Name, Avatar: defaultAvatar}
			if c.Name == "" {
				c.Name, c.Placeholder = NamePlaceholder, true
			}
			if c.Avatar == "" {
				c.Avatar = DefaultAvatar
			}
		}
	}()
	return Compose(p, defaultAvatar)
}

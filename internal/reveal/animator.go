// Package reveal models the entrance animation of rendered cards as a
// per-card state machine, independent of how visibility is detected.
//
// A card is registered once (Observe) and starts Pending. The first time it
// is reported visible it moves to Revealed and is no longer observed; its
// visual reveal is applied after a delay proportional to its position in the
// visibility batch. Nothing moves a card back to Pending.
package reveal

import "time"

// CardID identifies one rendered card instance. Re-rendering produces new ids.
type CardID string

// State is the animation state of a card.
type State int

const (
	// Unknown cards have never been registered (or were pruned).
	Unknown State = iota
	Pending
	Revealed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Reveal is a scheduled visual reveal.
type Reveal struct {
	ID    CardID
	Delay time.Duration
}

type card struct {
	state     State
	observing bool
	shown     bool
}

// Animator tracks the cards of the current document. It is driven from a
// single event loop and is not safe for concurrent use.
type Animator struct {
	stagger time.Duration
	cards   map[CardID]*card
}

// New returns an animator that staggers reveals in one batch by stagger.
func New(stagger time.Duration) *Animator {
	return &Animator{stagger: stagger, cards: make(map[CardID]*card)}
}

// Observe registers cards for visibility observation. Already registered
// cards are left untouched, so re-running the pass after a render only picks
// up the new ones. It returns how many cards were newly registered.
func (a *Animator) Observe(ids []CardID) int {
	added := 0
	for _, id := range ids {
		if _, ok := a.cards[id]; ok {
			continue
		}
		a.cards[id] = &card{state: Pending, observing: true}
		added++
	}
	return added
}

// Prune forgets every card not in live, i.e. cards a re-render removed from
// the document.
func (a *Animator) Prune(live []CardID) {
	keep := make(map[CardID]struct{}, len(live))
	for _, id := range live {
		keep[id] = struct{}{}
	}
	for id := range a.cards {
		if _, ok := keep[id]; !ok {
			delete(a.cards, id)
		}
	}
}

// Visible handles one batch of visibility notifications. Each observed
// pending card in the batch becomes Revealed and stops being observed; the
// returned reveals carry the stagger delay of the card's index among the
// cards revealed by this batch. Cards already revealed or never registered
// are ignored.
func (a *Animator) Visible(ids []CardID) []Reveal {
	var out []Reveal
	for _, id := range ids {
		c, ok := a.cards[id]
		if !ok || !c.observing || c.state != Pending {
			continue
		}
		c.state = Revealed
		c.observing = false
		out = append(out, Reveal{ID: id, Delay: time.Duration(len(out)) * a.stagger})
	}
	return out
}

// Apply marks the visual reveal of id as done. It reports false for cards
// that are not Revealed (for instance pruned by a newer render before the
// delay elapsed).
func (a *Animator) Apply(id CardID) bool {
	c, ok := a.cards[id]
	if !ok || c.state != Revealed {
		return false
	}
	c.shown = true
	return true
}

// State returns the state of id.
func (a *Animator) State(id CardID) State {
	if c, ok := a.cards[id]; ok {
		return c.state
	}
	return Unknown
}

// Observing reports whether id is still watched for visibility.
func (a *Animator) Observing(id CardID) bool {
	c, ok := a.cards[id]
	return ok && c.observing
}

// Shown reports whether the visual reveal of id has been applied.
func (a *Animator) Shown(id CardID) bool {
	c, ok := a.cards[id]
	return ok && c.shown
}

// Pending lists the cards among ids still awaiting visibility, in order.
func (a *Animator) Pending(ids []CardID) []CardID {
	var out []CardID
	for _, id := range ids {
		if c, ok := a.cards[id]; ok && c.observing {
			out = append(out, id)
		}
	}
	return out
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/creatordir/internal/render"
	"github.com/jask/creatordir/internal/reveal"
)

const cardGap = 1

// gridSurface is the terminal rendition of the results grid. Every Render
// call replaces all cards; card ids carry the render epoch so a re-render
// never reuses the identity of a card it removed.
type gridSurface struct {
	epoch int
	cards []render.Card
	ids   []reveal.CardID
	empty *render.Empty
	total int
	shown int

	// layout, rebuilt by lay
	rowOf  []int
	rowTop []int
	rowH   []int
}

func (s *gridSurface) Render(cards []render.Card) {
	s.epoch++
	s.empty = nil
	s.cards = cards
	s.ids = make([]reveal.CardID, len(cards))
	for i, c := range cards {
		s.ids[i] = reveal.CardID(fmt.Sprintf("%d:%d:%s", s.epoch, i, c.ID))
	}
}

func (s *gridSurface) ShowEmpty(e render.Empty) {
	s.epoch++
	s.cards, s.ids = nil, nil
	s.empty = &e
}

func (s *gridSurface) SetStats(total, shown int) {
	s.total, s.shown = total, shown
}

// columns is how many cards fit side by side in width.
func columns(width, cardWidth int) int {
	n := (width + cardGap) / (cardWidth + cardGap)
	if n < 1 {
		return 1
	}
	return n
}

// lay draws the cards into rows and records where each row starts. shown
// decides whether a card is drawn or held back as a blank box of equal size.
func (s *gridSurface) lay(width, cardWidth int, shown func(reveal.CardID) bool) string {
	s.rowOf, s.rowTop, s.rowH = s.rowOf[:0], s.rowTop[:0], s.rowH[:0]
	if len(s.cards) == 0 {
		return ""
	}
	cols := columns(width, cardWidth)
	var rows []string
	top := 0
	for start := 0; start < len(s.cards); start += cols {
		end := min(start+cols, len(s.cards))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			full := cardView(s.cards[i], cardWidth)
			if !shown(s.ids[i]) {
				full = blank(lipgloss.Width(full), lipgloss.Height(full))
			}
			cells = append(cells, full)
			s.rowOf = append(s.rowOf, len(rows))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		h := lipgloss.Height(row)
		s.rowTop = append(s.rowTop, top)
		s.rowH = append(s.rowH, h)
		rows = append(rows, row)
		top += h
	}
	return strings.Join(rows, "\n")
}

// visible returns the cards whose row intersects the window [offset, offset+height).
func (s *gridSurface) visible(offset, height int) []reveal.CardID {
	var out []reveal.CardID
	for i, id := range s.ids {
		if i >= len(s.rowOf) {
			break
		}
		r := s.rowOf[i]
		if s.rowTop[r] < offset+height && s.rowTop[r]+s.rowH[r] > offset {
			out = append(out, id)
		}
	}
	return out
}

func blank(w, h int) string {
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func cardView(c render.Card, width int) string {
	inner := width - 4
	var lines []string
	if c.Placeholder {
		lines = append(lines, cardPlaceholderStyle.Render(c.Name))
	} else {
		lines = append(lines, cardNameStyle.Render(c.Name))
	}
	if c.Age != "" {
		lines = append(lines, cardInfoStyle.Render(c.Age))
	}
	if c.Location != "" {
		lines = append(lines, cardInfoStyle.Render(c.Location))
	}
	if c.Bio != "" {
		lines = append(lines, cardBioStyle.Width(inner).Render(c.Bio))
		if c.LongBio {
			lines = append(lines, labelStyle.Render("(long bio)"))
		}
	}
	if c.HasSkills() {
		tags := make([]string, 0, len(c.Skills))
		for _, sk := range c.Skills {
			tags = append(tags, skillTagStyle.Render(sk))
		}
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")))
	} else {
		lines = append(lines, cardPlaceholderStyle.Render(render.NoSkillsPlaceholder))
	}
	if c.Phone != "" {
		lines = append(lines, cardLinkStyle.Render("☎ "+c.Phone))
		lines = append(lines, cardLinkStyle.Render(truncate(c.PhoneLink, inner)))
	}
	if c.ProfileURL != "" {
		lines = append(lines, cardLinkStyle.Render(truncate(c.ProfileURL, inner)))
	}
	lines = append(lines, labelStyle.Render(truncate("photo "+c.Avatar, inner)))
	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

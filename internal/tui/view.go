package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/creatordir/internal/directory"
	"github.com/jask/creatordir/internal/render"
)

func (a *App) View() string {
	body := a.viewport.View()
	if a.loading {
		body = lipgloss.Place(a.viewport.Width, a.viewport.Height, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" Loading participants...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.headerView(), a.controlsView(), body, a.footerView())
}

// chromeHeight is the number of lines around the grid.
func (a *App) chromeHeight() int {
	return lipgloss.Height(a.headerView()) + lipgloss.Height(a.controlsView()) + lipgloss.Height(a.footerView())
}

func (a *App) headerView() string {
	title := titleStyle.Render("Creators Directory")
	total, shown := "-", "-"
	if a.store.Loaded() {
		total, shown = fmt.Sprint(a.surface.total), fmt.Sprint(a.surface.shown)
	}
	stats := statStyle.Render("Total ") + statValue.Render(total) +
		statStyle.Render("  Shown ") + statValue.Render(shown)
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(stats))
	return title + strings.Repeat(" ", gap) + stats
}

func (a *App) controlsView() string {
	selects := make([]string, 0, len(directory.SelectFacets))
	for i, f := range directory.SelectFacets {
		value := a.store.Criteria().Get(f)
		if value == "" {
			value = "All"
		}
		style := selectStyle
		if a.focus == i+1 {
			style = selectActiveStyle
			value = "‹ " + value + " ›"
		}
		selects = append(selects, labelStyle.Render(f.Label()+":")+style.Render(value))
	}
	row := lipgloss.NewStyle().Width(a.width).Render(strings.Join(selects, "  "))
	return a.search.View() + "\n" + row + "\n"
}

func (a *App) footerView() string {
	help := a.keys.HelpFor(a.scope(), actionFocusNext, actionOptionNext, actionClear, actionRetry, actionQuit)
	parts := make([]string, 0, len(help))
	for _, h := range help {
		key, desc, _ := strings.Cut(h, " ")
		parts = append(parts, keyStyle.Render(key)+" "+helpDescStyle.Render(desc))
	}
	line := strings.Join(parts, "  ")
	if a.status != "" {
		line = statusStyle.Render(a.status) + "  " + line
	}
	return lipgloss.NewStyle().MaxWidth(a.width).Render(line)
}

func (a *App) emptyView(e render.Empty) string {
	var lines []string
	switch e.Reason {
	case render.EmptyLoadFailed:
		lines = append(lines, emptyErrTitle.Render("Could not load participants"), e.Message)
	default:
		lines = append(lines, e.Message)
	}
	if e.Hint != "" {
		lines = append(lines, labelStyle.Render(e.Hint))
	}
	var actions []string
	if e.Retry {
		actions = append(actions, a.actionHint(actionRetry, "Try again"))
	}
	if e.CreateProfile {
		actions = append(actions, a.actionHint(actionCreateProfile, "Create your profile"))
	}
	if e.Reason == render.EmptyNoMatches {
		actions = append(actions, a.actionHint(actionClear, "Clear filters"))
	}
	if len(actions) > 0 {
		lines = append(lines, "", strings.Join(actions, "   "))
	}
	panel := emptyStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(a.viewport.Width, lipgloss.Center, panel)
}

func (a *App) actionHint(action, label string) string {
	for _, b := range a.keys.BindingsForScope("*") {
		if b.Action == action && len(b.Keys) > 0 {
			return keyStyle.Render("["+b.Keys[0]+"]") + " " + label
		}
	}
	return label
}

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/creatordir/internal/config"
	"github.com/jask/creatordir/internal/database/repository"
	"github.com/jask/creatordir/internal/directory"
	"github.com/jask/creatordir/internal/remote"
	"github.com/jask/creatordir/internal/render"
	"github.com/jask/creatordir/internal/reveal"
	"github.com/jask/creatordir/internal/testdata"
)

type fetchResult struct {
	participants []directory.Participant
	err          error
}

type fakeSource struct {
	calls   int
	results []fetchResult
}

func (f *fakeSource) FetchAll(context.Context) ([]directory.Participant, error) {
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return r.participants, r.err
}

type fakeSaver struct {
	saved [][]directory.Participant
	err   error
}

func (f *fakeSaver) Save(_ context.Context, _ string, ps []directory.Participant) (repository.Snapshot, error) {
	f.saved = append(f.saved, ps)
	return repository.Snapshot{ID: "snap", Count: len(ps)}, f.err
}

func people() []directory.Participant {
	return []directory.Participant{
		{ID: "a", Name: "Ana Silva", Region: "SP", City: "Campinas", Skills: []string{"Go"}},
		{ID: "b", Name: "Pedro Nunes", Region: "RJ", City: "Niterói"},
		{ID: "c", Name: "Mariana Gomes", Region: "SP", City: "Santos", Skills: []string{"Design"}},
	}
}

func newTestApp(t *testing.T, src Source, saver SnapshotSaver) *App {
	t.Helper()
	cfg := config.Config{UI: config.UIConfig{CardWidth: 30, DefaultAvatar: "default.jpg", ProfileURL: "profile.html"}}
	a := New(context.Background(), cfg, Deps{Source: src, Snapshots: saver, SourceName: "test", Log: zerolog.Nop()})
	a.search.Cursor.SetMode(cursor.CursorStatic)
	send(a, tea.WindowSizeMsg{Width: 120, Height: 60})
	return a
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// collect runs cmd and every command batched inside it.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func msgsOf[T tea.Msg](cmd tea.Cmd) []T {
	var out []T
	for _, m := range collect(cmd) {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// settle delivers the load responses and reveal ticks produced by cmd.
func settle(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for _, m := range msgsOf[loadedMsg](cmd) {
		applyReveals(a, send(a, m))
	}
}

func applyReveals(a *App, cmd tea.Cmd) {
	for _, m := range msgsOf[revealMsg](cmd) {
		send(a, m)
	}
}

func typeText(a *App, s string) {
	for _, r := range s {
		send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestLoadRendersCardsAndStats(t *testing.T) {
	saver := &fakeSaver{}
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, saver)

	cmd := a.load()
	require.True(t, a.loading)
	require.Contains(t, a.View(), "Loading participants")
	require.Contains(t, a.headerView(), "Total -")

	var saved int
	for _, m := range msgsOf[loadedMsg](cmd) {
		for _, out := range collect(send(a, m)) {
			switch v := out.(type) {
			case revealMsg:
				send(a, v)
			case snapshotSavedMsg:
				saved++
				require.NoError(t, v.err)
			}
		}
	}
	require.False(t, a.loading)
	require.Len(t, a.surface.cards, 3)
	require.Equal(t, 3, a.surface.total)
	require.Equal(t, 3, a.surface.shown)
	require.Contains(t, a.View(), "Ana Silva")
	require.Contains(t, a.View(), "Mariana Gomes")
	require.Contains(t, a.headerView(), "Total 3")
	require.Len(t, saver.saved, 1)
	require.Equal(t, 1, saved)
}

func TestLoadFailureThenRetry(t *testing.T) {
	src := &fakeSource{results: []fetchResult{
		{err: &remote.RemoteError{Status: 500, Message: "db down"}},
		{participants: people()},
	}}
	saver := &fakeSaver{}
	a := newTestApp(t, src, saver)

	settle(t, a, a.load())
	require.False(t, a.loading)
	require.NotNil(t, a.surface.empty)
	require.Equal(t, render.EmptyLoadFailed, a.surface.empty.Reason)
	require.Equal(t, "db down", a.surface.empty.Message)
	require.Contains(t, a.View(), "db down")
	require.Contains(t, a.View(), "Try again")
	require.Empty(t, saver.saved)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, a.loading)
	require.Nil(t, a.loadErr)
	settle(t, a, cmd)

	require.Equal(t, 2, src.calls)
	require.False(t, a.loading)
	require.Nil(t, a.surface.empty)
	require.Len(t, a.surface.cards, 3)
}

func TestNetworkFailureClearsIndicator(t *testing.T) {
	src := &fakeSource{results: []fetchResult{{err: &remote.NetworkError{Err: errors.New("connection refused")}}}}
	a := newTestApp(t, src, nil)

	settle(t, a, a.load())
	require.False(t, a.loading)
	require.Equal(t, render.EmptyLoadFailed, a.surface.empty.Reason)
	require.Contains(t, a.surface.empty.Message, "connection refused")
}

func TestStaleLoadDiscarded(t *testing.T) {
	older := []directory.Participant{{ID: "old", Name: "Old"}}
	src := &fakeSource{results: []fetchResult{{participants: older}, {participants: people()}}}
	a := newTestApp(t, src, nil)

	first := msgsOf[loadedMsg](a.load())
	second := msgsOf[loadedMsg](a.load())
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	send(a, first[0])
	require.True(t, a.loading)
	require.False(t, a.store.Loaded())

	send(a, second[0])
	require.False(t, a.loading)
	require.Equal(t, 3, a.store.Total())
}

func TestNameSearchIsDebounced(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	settle(t, a, a.load())

	typeText(a, "ana")
	require.Equal(t, "ana", a.search.Value())
	require.Empty(t, a.store.Criteria().Name)
	require.Equal(t, 3, a.surface.shown)

	send(a, debounceMsg{owner: searchOwner, seq: 1})
	require.Empty(t, a.store.Criteria().Name)

	send(a, debounceMsg{owner: searchOwner, seq: 3})
	require.Equal(t, "ana", a.store.Criteria().Name)
	require.Equal(t, 2, a.surface.shown)
	require.Equal(t, 3, a.surface.total)
}

func TestSelectorAppliesImmediately(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	settle(t, a, a.load())

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, scopeSelect, a.scope())

	send(a, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, "RJ", a.store.Criteria().Region)
	require.Equal(t, 1, a.surface.shown)

	send(a, tea.KeyMsg{Type: tea.KeyLeft})
	require.Empty(t, a.store.Criteria().Region)
	require.Equal(t, 3, a.surface.shown)

	send(a, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, "SP", a.store.Criteria().Region)
	require.Equal(t, 2, a.surface.shown)
}

func TestClearDropsPendingSearch(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	settle(t, a, a.load())

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	send(a, tea.KeyMsg{Type: tea.KeyRight})
	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(a, "x")
	pending := debounceMsg{owner: searchOwner, seq: a.debounce.seq}

	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, a.store.Criteria().IsZero())
	require.Empty(t, a.search.Value())
	require.Equal(t, 3, a.surface.shown)

	send(a, pending)
	require.Empty(t, a.store.Criteria().Name)
}

func TestNoMatchesOffersSuggestion(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	settle(t, a, a.load())

	typeText(a, "pedrp")
	send(a, debounceMsg{owner: searchOwner, seq: a.debounce.seq})
	require.NotNil(t, a.surface.empty)
	require.Equal(t, render.EmptyNoMatches, a.surface.empty.Reason)
	require.Equal(t, "Did you mean Pedro Nunes?", a.surface.empty.Hint)
	require.Equal(t, 0, a.surface.shown)
	require.Contains(t, a.View(), "Clear filters")
}

func TestEmptyDirectoryOffersProfile(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: []directory.Participant{}}}}, nil)
	settle(t, a, a.load())

	require.Equal(t, render.EmptyDirectory, a.surface.empty.Reason)
	require.True(t, a.surface.empty.CreateProfile)
	require.Contains(t, a.View(), "Create your profile")

	send(a, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, "Create your profile at profile.html", a.status)
}

func TestRevealNeverRetriggers(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	cmd := a.load()

	var reveals []revealMsg
	for _, m := range msgsOf[loadedMsg](cmd) {
		reveals = msgsOf[revealMsg](send(a, m))
	}
	require.Len(t, reveals, 3)
	for _, r := range reveals {
		send(a, r)
		require.True(t, a.animator.Shown(r.id))
	}

	require.Nil(t, a.checkVisibility())
	require.Nil(t, send(a, tea.KeyMsg{Type: tea.KeyDown}))
}

func TestRerenderRevealsAgain(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, nil)
	settle(t, a, a.load())
	before := append(a.surface.ids[:0:0], a.surface.ids...)

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	cmd := send(a, tea.KeyMsg{Type: tea.KeyRight})
	require.Len(t, msgsOf[revealMsg](cmd), 1)
	for _, id := range before {
		require.False(t, a.animator.Observing(id))
		require.False(t, a.animator.Shown(id))
	}
}

func TestSnapshotSaveFailureIsLogged(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: people()}}}, saver)

	for _, m := range msgsOf[loadedMsg](a.load()) {
		for _, s := range msgsOf[snapshotSavedMsg](send(a, m)) {
			require.Error(t, s.err)
			require.Nil(t, send(a, s))
		}
	}
	require.Len(t, a.surface.cards, 3)
}

func TestOnlyVisibleCardsReveal(t *testing.T) {
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: testdata.Participants(60, 3)}}}, nil)

	seen := map[reveal.CardID]int{}
	deliver := func(cmd tea.Cmd) int {
		rs := msgsOf[revealMsg](cmd)
		for _, r := range rs {
			seen[r.id]++
			send(a, r)
		}
		return len(rs)
	}

	var first int
	for _, m := range msgsOf[loadedMsg](a.load()) {
		first = deliver(send(a, m))
	}
	require.Positive(t, first)
	require.Less(t, first, 60)

	for i := 0; i < 100 && len(seen) < 60; i++ {
		deliver(send(a, tea.KeyMsg{Type: tea.KeyPgDown}))
	}
	require.Len(t, seen, 60)
	for id, n := range seen {
		require.Equal(t, 1, n, "card %s revealed more than once", id)
	}
}

func TestFrameFitsTerminalWithLongSelections(t *testing.T) {
	long := []directory.Participant{{
		ID:           "x",
		Name:         "Ana Silva",
		Region:       "São Paulo Metropolitan Region",
		City:         "São José dos Campos do Vale",
		Organization: "Comunidade Evangélica Internacional",
		Skills:       []string{"Cinematography and Motion Design"},
	}}
	a := newTestApp(t, &fakeSource{results: []fetchResult{{participants: long}}}, nil)
	send(a, tea.WindowSizeMsg{Width: 80, Height: 24})
	settle(t, a, a.load())
	require.LessOrEqual(t, lipgloss.Height(a.View()), 24)

	for range directory.SelectFacets {
		send(a, tea.KeyMsg{Type: tea.KeyTab})
		send(a, tea.KeyMsg{Type: tea.KeyRight})
	}
	require.Equal(t, "Cinematography and Motion Design", a.store.Criteria().Skill)
	require.Equal(t, 1, a.surface.shown)

	view := a.View()
	require.LessOrEqual(t, lipgloss.Height(view), 24)
	require.Contains(t, strings.SplitN(view, "\n", 2)[0], "Shown")

	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.LessOrEqual(t, lipgloss.Height(a.View()), 24)
}

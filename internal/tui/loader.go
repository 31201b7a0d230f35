package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/creatordir/internal/directory"
	"github.com/jask/creatordir/internal/remote"
)

// load starts a load sequence: the loading indicator goes up, the error
// panel is hidden, and the source is fetched in the background. Issuing a
// new load supersedes any in flight.
func (a *App) load() tea.Cmd {
	gen := a.store.BeginLoad()
	a.loading = true
	a.loadErr = nil
	a.log.Info().Uint64("generation", gen).Str("source", a.srcName).Msg("loading directory")

	ctx, source := a.ctx, a.source
	fetch := func() tea.Msg {
		participants, err := source.FetchAll(ctx)
		return loadedMsg{gen: gen, participants: participants, err: err}
	}
	return tea.Batch(a.spinner.Tick, fetch)
}

// finishLoad settles a load sequence. Responses of superseded sequences are
// dropped without touching any state.
func (a *App) finishLoad(m loadedMsg) tea.Cmd {
	if !a.store.Current(m.gen) {
		a.log.Debug().Uint64("generation", m.gen).Msg("discarding stale load")
		return nil
	}
	defer func() { a.loading = false }()

	if m.err != nil {
		a.loadErr = m.err
		a.dirty = true
		ev := a.log.Error().Err(m.err).Uint64("generation", m.gen)
		var rerr *remote.RemoteError
		if errors.As(m.err, &rerr) {
			ev = ev.Int("status", rerr.Status)
		}
		ev.Msg("directory load failed")
		return nil
	}
	a.store.CommitLoad(m.gen, m.participants)
	a.log.Info().Uint64("generation", m.gen).Int("count", a.store.Total()).Msg("directory loaded")
	return a.saveSnapshot(m.participants)
}

func (a *App) saveSnapshot(participants []directory.Participant) tea.Cmd {
	if a.snapshots == nil {
		return nil
	}
	ctx, saver, src := a.ctx, a.snapshots, a.srcName
	return func() tea.Msg {
		snap, err := saver.Save(ctx, src, participants)
		return snapshotSavedMsg{snap: snap, err: err}
	}
}

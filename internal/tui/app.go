package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/creatordir/internal/config"
	"github.com/jask/creatordir/internal/database/repository"
	"github.com/jask/creatordir/internal/directory"
	"github.com/jask/creatordir/internal/render"
	"github.com/jask/creatordir/internal/reveal"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	searchOwner   = "search"
)

// Source loads the full participant collection.
type Source interface {
	FetchAll(ctx context.Context) ([]directory.Participant, error)
}

// SnapshotSaver keeps a local copy of each successful load.
type SnapshotSaver interface {
	Save(ctx context.Context, source string, participants []directory.Participant) (repository.Snapshot, error)
}

// Deps are the collaborators of the App.
type Deps struct {
	Source Source
	// Snapshots is nil when snapshots are disabled or the source is itself a snapshot.
	Snapshots  SnapshotSaver
	SourceName string
	Log        zerolog.Logger
}

// App is the directory page: filter controls, stats, and the results grid.
type App struct {
	ctx       context.Context
	log       zerolog.Logger
	source    Source
	snapshots SnapshotSaver
	srcName   string
	ui        config.UIConfig

	store    *directory.Store
	animator *reveal.Animator
	keys     *KeyRegistry
	surface  *gridSurface

	search   textinput.Model
	debounce debouncer
	spinner  spinner.Model
	viewport viewport.Model

	// focus 0 is the search input, 1.. index directory.SelectFacets.
	focus   int
	loading bool
	loadErr error
	dirty   bool
	status  string
	width   int
	height  int
}

type (
	loadedMsg struct {
		gen          uint64
		participants []directory.Participant
		err          error
	}
	revealMsg        struct{ id reveal.CardID }
	snapshotSavedMsg struct {
		snap repository.Snapshot
		err  error
	}
)

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	search := textinput.New()
	search.Placeholder = "Search by name"
	search.Prompt = "Name: "
	search.CharLimit = 120
	search.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	a := &App{
		ctx:       ctx,
		log:       deps.Log,
		source:    deps.Source,
		snapshots: deps.Snapshots,
		srcName:   deps.SourceName,
		ui:        cfg.UI,
		store:     directory.NewStore(),
		animator:  reveal.New(cfg.UI.RevealStagger),
		keys:      NewKeyRegistry(ApplyActionKeybindings(DefaultKeyBindings(), cfg.Keys)),
		surface:   &gridSurface{},
		search:    search,
		debounce:  newDebouncer(searchOwner, cfg.UI.SearchDebounce),
		spinner:   sp,
		viewport:  viewport.New(defaultWidth, defaultHeight),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	a.store.OnChange(func(directory.Change) { a.dirty = true })
	a.resize()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.load())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.dirty {
		cmd = tea.Batch(cmd, a.renderPass())
	}
	if a.fitViewport() {
		cmd = tea.Batch(cmd, a.checkVisibility())
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		return a.checkVisibility()
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(m)
		return tea.Batch(cmd, a.checkVisibility())
	case debounceMsg:
		if !a.debounce.Fire(m) {
			return nil
		}
		a.setCriterion(directory.FacetName, a.search.Value())
	case loadedMsg:
		return a.finishLoad(m)
	case spinner.TickMsg:
		if !a.loading {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return cmd
	case revealMsg:
		if !a.animator.Apply(m.id) {
			a.log.Debug().Str("card", string(m.id)).Stringer("state", a.animator.State(m.id)).Msg("late reveal dropped")
			return nil
		}
		a.relayout()
	case snapshotSavedMsg:
		if m.err != nil {
			a.log.Warn().Err(m.err).Msg("snapshot save failed")
			return nil
		}
		a.log.Debug().Str("snapshot", m.snap.ID).Int("count", m.snap.Count).Msg("snapshot saved")
	default:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) scope() string {
	if a.focus == 0 {
		return scopeSearch
	}
	return scopeSelect
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch a.keys.Action(m, a.scope()) {
	case actionQuit:
		return tea.Quit
	case actionRetry:
		a.status = ""
		return a.load()
	case actionClear:
		a.clearFilters()
		return nil
	case actionFocusNext:
		a.setFocus(a.focus + 1)
		return nil
	case actionFocusPrev:
		a.setFocus(a.focus - 1)
		return nil
	case actionOptionNext:
		a.cycleOption(1)
		return nil
	case actionOptionPrev:
		a.cycleOption(-1)
		return nil
	case actionScrollUp:
		a.viewport.LineUp(1)
		return a.checkVisibility()
	case actionScrollDown:
		a.viewport.LineDown(1)
		return a.checkVisibility()
	case actionPageUp:
		a.viewport.ViewUp()
		return a.checkVisibility()
	case actionPageDown:
		a.viewport.ViewDown()
		return a.checkVisibility()
	case actionCreateProfile:
		if a.surface.empty != nil && a.surface.empty.CreateProfile {
			a.status = "Create your profile at " + a.ui.ProfileURL
		}
		return nil
	}
	if a.focus != 0 {
		return nil
	}
	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	if a.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.debounce.Trigger())
}

func (a *App) setFocus(n int) {
	total := len(directory.SelectFacets) + 1
	a.focus = ((n % total) + total) % total
	if a.focus == 0 {
		a.search.Focus()
	} else {
		a.search.Blur()
	}
}

// cycleOption moves the focused selector by step through "all" and its
// options. Selection changes apply at once.
func (a *App) cycleOption(step int) {
	if a.focus == 0 {
		return
	}
	f := directory.SelectFacets[a.focus-1]
	opts := append([]string{""}, a.store.Options(f)...)
	cur := 0
	for i, o := range opts {
		if o == a.store.Criteria().Get(f) {
			cur = i
			break
		}
	}
	next := ((cur+step)%len(opts) + len(opts)) % len(opts)
	a.setCriterion(f, opts[next])
}

func (a *App) setCriterion(f directory.Facet, value string) {
	if err := a.store.SetCriterion(f, value); err != nil {
		a.log.Error().Err(err).Str("facet", string(f)).Msg("set criterion")
	}
}

// clearFilters empties every control and criterion. A pending name timer is
// dropped so it cannot re-apply the old text.
func (a *App) clearFilters() {
	a.debounce.Cancel()
	a.search.SetValue("")
	a.store.ClearAll()
}

// renderPass runs one pass of the render pipeline, then registers the new
// cards for reveal and reports the ones already on screen.
func (a *App) renderPass() tea.Cmd {
	a.dirty = false
	filtered := a.store.Filtered()
	rctx := render.Context{
		Total:         a.store.Total(),
		LoadErr:       a.loadErr,
		DefaultAvatar: a.ui.DefaultAvatar,
	}
	if name := a.store.Criteria().Name; len(filtered) == 0 && name != "" {
		rctx.Suggestion = directory.SuggestName(a.store.Full(), name)
	}
	render.Grid(a.surface, filtered, rctx)
	a.log.Debug().Int("total", a.surface.total).Int("shown", a.surface.shown).Msg("render pass")

	a.animator.Prune(a.surface.ids)
	a.animator.Observe(a.surface.ids)
	a.relayout()
	a.viewport.GotoTop()
	return a.checkVisibility()
}

// checkVisibility feeds the cards currently in the viewport window to the
// animator and schedules their staggered reveals.
func (a *App) checkVisibility() tea.Cmd {
	if a.loading {
		return nil
	}
	pending := a.animator.Pending(a.surface.visible(a.viewport.YOffset, a.viewport.Height))
	if len(pending) == 0 {
		return nil
	}
	reveals := a.animator.Visible(pending)
	cmds := make([]tea.Cmd, 0, len(reveals))
	for _, r := range reveals {
		id := r.ID
		cmds = append(cmds, tea.Tick(r.Delay, func(time.Time) tea.Msg { return revealMsg{id: id} }))
	}
	return tea.Batch(cmds...)
}

func (a *App) relayout() {
	content := a.surface.lay(a.viewport.Width, a.ui.CardWidth, a.animator.Shown)
	if a.surface.empty != nil {
		content = a.emptyView(*a.surface.empty)
	}
	a.viewport.SetContent(content)
}

func (a *App) resize() {
	a.search.Width = max(10, a.width-len(a.search.Prompt)-2)
	a.viewport.Width = a.width
	a.fitViewport()
	a.relayout()
}

// fitViewport gives the grid whatever height the controls leave free. The
// selector row wraps as values change, so this runs after every update.
func (a *App) fitViewport() bool {
	h := max(3, a.height-a.chromeHeight())
	if h == a.viewport.Height {
		return false
	}
	a.viewport.Height = h
	a.viewport.SetYOffset(a.viewport.YOffset)
	return true
}

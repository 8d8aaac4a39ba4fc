// Package tui is the bubbletea dashboard: one panel per branch, laid out on
// a 12-column grid, each panel holding up to six bar charts.
package tui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/branchboard/internal/config"
	"github.com/janekbaraniewski/branchboard/internal/core"
	"github.com/janekbaraniewski/branchboard/internal/layout"
	"github.com/janekbaraniewski/branchboard/internal/viewstate"
)

const defaultLayoutDelay = 100 * time.Millisecond

// FetchFunc loads one payload. It runs off the update loop.
type FetchFunc func(ctx context.Context) (core.APIResponse, error)

type Options struct {
	Title       string
	Locale      string
	LayoutDelay time.Duration
	Fetch       FetchFunc
	// Context bounds every fetch; cancelling it drops in-flight results.
	Context context.Context
}

// ConfigReloadedMsg is sent by the config watcher. A non-nil Fetch replaces
// the data source and triggers a refetch.
type ConfigReloadedMsg struct {
	Config config.Config
	Fetch  FetchFunc
	Err    error
}

type fetchResultMsg struct {
	gen  int
	resp core.APIResponse
	err  error
}

type layoutTickMsg struct{ gen int }

type themePersistedMsg struct{ err error }

type Model struct {
	title       string
	locale      string
	layoutDelay time.Duration
	fetch       FetchFunc
	ctx         context.Context

	store viewstate.Store
	grid  layout.Adapter

	spinner  spinner.Model
	loading  bool
	err      error
	fetchGen int

	layoutGen int

	cursor    int // index into store.IDs()
	barCursor int // highlighted bar in the selected branch's charts
	offset    int // vertical scroll in lines
	showHelp  bool
	status    string

	width  int
	height int
}

func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	delay := opts.LayoutDelay
	if delay <= 0 {
		delay = defaultLayoutDelay
	}

	return Model{
		title:       opts.Title,
		locale:      opts.Locale,
		layoutDelay: delay,
		fetch:       opts.Fetch,
		ctx:         ctx,
		grid:        layout.NewGrid(layout.Columns),
		spinner:     s,
		loading:     true,
		fetchGen:    1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(m.fetchGen))
}

func (m Model) fetchCmd(gen int) tea.Cmd {
	fetch, ctx := m.fetch, m.ctx
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		resp, err := fetch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return fetchResultMsg{gen: gen, resp: resp, err: err}
	}
}

// scheduleLayout re-initialises the layout engine once the next frame has
// been drawn. Only the latest scheduled tick takes effect.
func (m *Model) scheduleLayout() tea.Cmd {
	m.layoutGen++
	gen := m.layoutGen
	return tea.Tick(m.layoutDelay, func(time.Time) tea.Msg {
		return layoutTickMsg{gen: gen}
	})
}

func (m Model) persistThemeCmd(name string) tea.Cmd {
	return func() tea.Msg {
		err := config.SaveTheme(name)
		if err != nil {
			log.Printf("theme persist: %v", err)
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = clamp(m.offset, 0, m.maxOffset())
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		return m.applyFetchResult(msg)

	case layoutTickMsg:
		if msg.gen != m.layoutGen {
			return m, nil
		}
		m.reinitLayout()
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg)

	case themePersistedMsg:
		if msg.err != nil {
			m.status = "theme save failed"
		} else {
			m.status = "theme saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) applyFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.fetchGen {
		return m, nil
	}
	m.loading = false

	if msg.err != nil {
		log.Printf("fetch: %v", msg.err)
		m.err = msg.err
		m.store = viewstate.New(nil)
		m.grid.Destroy()
		return m, nil
	}

	m.err = nil
	m.store = viewstate.New(core.Normalize(msg.resp, core.NormalizeOptions{Locale: m.locale}))
	m.cursor = clamp(m.cursor, 0, max(m.store.Len()-1, 0))
	m.status = ""
	return m, m.scheduleLayout()
}

// reinitLayout keeps any geometry the user adjusted, then rebuilds the grid
// from the visible panels and reads back the packed result.
func (m *Model) reinitLayout() {
	if m.grid.Initialized() {
		m.store = m.store.SyncGeometry(m.grid)
	}
	m.grid.Destroy()
	m.grid.Init(m.store.Panels())
	m.store = m.store.SyncGeometry(m.grid)
	m.offset = clamp(m.offset, 0, m.maxOffset())
}

func (m Model) applyConfig(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("config reload: %v", msg.Err)
		m.status = "config reload failed"
		return m, nil
	}

	cfg := msg.Config
	localeChanged := cfg.UI.Locale != m.locale
	m.title = cfg.UI.Title
	m.locale = cfg.UI.Locale
	if cfg.UI.LayoutDelayMS > 0 {
		m.layoutDelay = time.Duration(cfg.UI.LayoutDelayMS) * time.Millisecond
	}
	SetThemeByName(cfg.Theme)
	m.status = "config reloaded"

	// Theme and title changes apply in place; month labels and the data
	// source need a fresh payload.
	if msg.Fetch == nil && !localeChanged {
		return m, nil
	}
	if msg.Fetch != nil {
		m.fetch = msg.Fetch
	}
	m, cmd := m.refetch()
	return m, cmd
}

// refetch starts a new fetch generation. Results of earlier generations are
// dropped when they arrive.
func (m Model) refetch() (Model, tea.Cmd) {
	m.fetchGen++
	m.loading = true
	m.err = nil
	m.store = viewstate.New(nil)
	m.grid.Destroy()
	m.offset = 0
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(m.fetchGen))
}

func (m Model) selectedID() (int, bool) {
	ids := m.store.IDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[clamp(m.cursor, 0, len(ids)-1)], true
}

func (m Model) maxOffset() int {
	return max(m.canvasHeight()-m.viewHeight(), 0)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

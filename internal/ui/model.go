package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"grubgrip/internal/browse"
	"grubgrip/internal/config"
	"grubgrip/internal/domain"
	"grubgrip/internal/eventbus"
	"grubgrip/internal/ui/views"
)

// inputMode tracks which key handler is active
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeSort
)

// Model is the Bubble Tea model hosting the browse controller. Every
// controller call happens inside Update, which is how the controller's
// single-goroutine contract is kept.
type Model struct {
	cfg       *config.Config
	configSvc config.ConfigService
	browser   *browse.Controller
	sortKeys  []browse.Key

	width  int
	height int

	cursor         int
	viewportOffset int

	mode        inputMode
	searchInput textinput.Model
	priorTerm   string
	sortIndex   int
	priorSortID string

	loading       int
	statusMessage string
	statusIsError bool

	showHelp         bool
	helpScrollOffset int
	detail           *domain.Restaurant

	renderer *views.Renderer
	helpOps  *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the UI model and the list controller it hosts
func NewModel(cfg *config.Config, configSvc config.ConfigService, source browse.Source, catalog browse.Catalog, defaultKey browse.Key) *Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "restaurant name"
	ti.CharLimit = 64

	m := &Model{
		cfg:         cfg,
		configSvc:   configSvc,
		sortKeys:    browse.Keys(),
		searchInput: ti,
		renderer:    views.NewRenderer(),
	}

	// The loop source re-enters completions through program.Send, so
	// the controller only ever runs on the update goroutine.
	m.browser = browse.New(&loopSource{inner: source, model: m}, catalog, defaultKey)
	m.browser.SetObserver(m)
	m.browser.SetErrorSink(m)
	m.browser.SetNavigator(m)

	return m
}

// SetProgram sets the program reference for terminal management and
// for marshalling feed completions onto the update loop
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Browser exposes the hosted controller
func (m *Model) Browser() *browse.Controller { return m.browser }

// Init kicks off the initial feed load
func (m *Model) Init() tea.Cmd {
	m.browser.Initialize()
	return textinput.Blink
}

// RowsChanged keeps the cursor and viewport inside the new row list
func (m *Model) RowsChanged() {
	m.clampCursor()
}

// LoadFailed surfaces the feed error on the status line
func (m *Model) LoadFailed(err error) {
	m.statusMessage = fmt.Sprintf("Error: %v", err)
	m.statusIsError = true
}

// ShowDetail opens the detail popup for a restaurant
func (m *Model) ShowDetail(r domain.Restaurant) {
	m.detail = &r
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case feedDeliveredMsg:
		// Run the pending completion here, on the update goroutine
		msg.deliver(msg.restaurants, msg.err)
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		if m.loading > 0 {
			return m, m.tick()
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Error("help pager failed", "error", msg.err)
			m.statusMessage = fmt.Sprintf("Pager error: %v", msg.err)
			m.statusIsError = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleEvent reacts to domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.FeedLoadStartedEvent:
		m.loading++
		m.statusMessage = "Loading feed..."
		m.statusIsError = false
		if m.loading == 1 {
			return m.tick()
		}

	case eventbus.FeedLoadCompletedEvent:
		if m.loading > 0 {
			m.loading--
		}
		m.statusMessage = fmt.Sprintf("Loaded %d restaurants in %s", e.Count, e.Elapsed.Round(time.Millisecond))
		m.statusIsError = false

	case eventbus.FeedLoadFailedEvent:
		if m.loading > 0 {
			m.loading--
		}
		// The error text itself arrives through the controller's sink
	}
	return nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// handleKey routes key presses by popup state and input mode
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.saveSortPreference()
		return m, tea.Quit
	}

	if m.detail != nil {
		switch msg.String() {
		case "esc", "enter", "q":
			m.detail = nil
		}
		return m, nil
	}

	if m.showHelp {
		return m.handleHelpKey(msg)
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeSort:
		return m.handleSortKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.saveSortPreference()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "g", "home":
		m.cursor = 0
		m.clampCursor()

	case "G", "end":
		m.cursor = m.browser.RowCount() - 1
		m.clampCursor()

	case "enter":
		m.browser.SelectRow(m.cursor)

	case "/":
		m.enterSearchMode()
		return m, textinput.Blink

	case "s":
		m.enterSortMode()

	case "R":
		m.browser.Initialize()

	case "?":
		m.showHelp = true
		m.helpScrollOffset = 0
	}

	return m, nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.showHelp = false
		m.helpScrollOffset = 0

	case "down", "j":
		m.helpScrollOffset++

	case "up", "k":
		if m.helpScrollOffset > 0 {
			m.helpScrollOffset--
		}

	case "o":
		return m, m.openHelpPager()
	}

	return m, nil
}

func (m *Model) enterSearchMode() {
	m.mode = modeSearch
	m.priorTerm = m.browser.SearchTerm()
	m.searchInput.SetValue(m.priorTerm)
	m.searchInput.CursorEnd()
	m.searchInput.Focus()
}

// handleSearchKey filters live on every keystroke; esc restores the
// term the mode was entered with
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.browser.SetSearchTerm(m.priorTerm)
		m.leaveSearchMode()
		return m, nil

	case "enter":
		m.leaveSearchMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.browser.SetSearchTerm(m.searchInput.Value())
	return m, cmd
}

func (m *Model) leaveSearchMode() {
	m.mode = modeNormal
	m.searchInput.Blur()
}

func (m *Model) enterSortMode() {
	m.mode = modeSort
	m.priorSortID = m.browser.ActiveKey().ID
	m.sortIndex = 0
	for i, k := range m.sortKeys {
		if k.ID == m.priorSortID {
			m.sortIndex = i
			break
		}
	}
}

// handleSortKey applies the highlighted key immediately while
// navigating; esc restores the key the mode was entered with
func (m *Model) handleSortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.browser.SelectSort(m.priorSortID)
		m.mode = modeNormal

	case "enter":
		m.mode = modeNormal

	case "down", "j":
		m.sortIndex = (m.sortIndex + 1) % len(m.sortKeys)
		m.browser.SelectSort(m.sortKeys[m.sortIndex].ID)

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(m.sortKeys) - 1
		}
		m.browser.SelectSort(m.sortKeys[m.sortIndex].ID)
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	max := m.browser.RowCount() - 1
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// viewportHeight returns how many rows fit on screen. The title, the
// status line and the help hint eat into the height, and each row
// renders as two lines.
func (m *Model) viewportHeight() int {
	usable := m.height - 8
	if usable < 2 {
		usable = 2
	}
	return usable / 2
}

func (m *Model) ensureCursorVisible() {
	vis := m.viewportHeight()
	if m.cursor < m.viewportOffset {
		m.viewportOffset = m.cursor
	}
	if m.cursor >= m.viewportOffset+vis {
		m.viewportOffset = m.cursor - vis + 1
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}

// saveSortPreference persists the active sort key on quit when it
// differs from the configured default
func (m *Model) saveSortPreference() {
	if m.cfg == nil || m.configSvc == nil || !m.cfg.UISettings.RememberSort {
		return
	}
	active := m.browser.ActiveKey().ID
	if active == m.cfg.DefaultSort {
		return
	}
	m.cfg.DefaultSort = active
	if err := m.configSvc.Save(m.cfg); err != nil {
		log.Error("failed to save config", "error", err)
		return
	}
	log.Debug("saved sort preference", "key", active)
}

func (m *Model) openHelpPager() tea.Cmd {
	if m.helpOps == nil {
		return nil
	}
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(helpPagerContent())}
	}
}

// View renders the UI
func (m *Model) View() string {
	return m.renderer.Render(m.buildViewState())
}

// buildViewState snapshots everything the renderer needs for a frame
func (m *Model) buildViewState() views.ViewState {
	rows := make([]browse.Row, m.browser.RowCount())
	for i := range rows {
		rows[i], _ = m.browser.Row(i)
	}

	vs := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Rows:             rows,
		Cursor:           m.cursor,
		ViewportOffset:   m.viewportOffset,
		ViewportHeight:   m.viewportHeight(),
		Loading:          m.loading > 0,
		StatusMessage:    m.statusMessage,
		StatusIsError:    m.statusIsError,
		SearchQuery:      m.browser.SearchTerm(),
		SortLabel:        m.browser.ActiveKey().Label,
		SortOptionIndex:  m.sortIndex,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScrollOffset,
	}

	switch m.mode {
	case modeSearch:
		vs.InputMode = "search"
		vs.TextInput = m.searchInput.View()
	case modeSort:
		vs.InputMode = "sort"
	}

	if m.detail != nil {
		vs.ShowInfo = true
		vs.InfoContent = m.detailContent(*m.detail)
	}

	return vs
}

// detailContent builds the detail popup body: the restaurant's name,
// opening state and every sort metric
func (m *Model) detailContent(r domain.Restaurant) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString("\n")
	b.WriteString(string(r.Status))
	b.WriteString("\n\n")
	for _, k := range m.sortKeys {
		b.WriteString(fmt.Sprintf("%-15s %s\n", k.Label+":", k.Format(k.Metric(r))))
	}
	return strings.TrimRight(b.String(), "\n")
}

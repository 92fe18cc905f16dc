package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songbox/internal/catalog"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/queue"
	"github.com/desertthunder/songbox/internal/search"
	"github.com/desertthunder/songbox/internal/sidebar"
	"github.com/desertthunder/songbox/internal/theme"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	QueueView
)

// eventBuffer sizes the store-to-TUI bridge channel. Snapshot messages are
// coalescing by nature, so dropping under pressure only skips a repaint.
const eventBuffer = 64

type songsLoadedMsg struct {
	songs []models.Song
	err   error
}

type catalogChangedMsg struct{}

type searchSnapshotMsg search.Snapshot

type sidebarSnapshotMsg sidebar.Snapshot

type themeChangedMsg string

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	catalog *catalog.Service
	search  *search.Store
	queue   *queue.Store
	sidebar *sidebar.Controller
	themes  *theme.Store

	view   ViewState
	width  int
	height int

	songList    list.Model
	listReady   bool
	searchInput textinput.Model
	searching   bool
	queueCursor int

	searchSnap  search.Snapshot
	sidebarSnap sidebar.Snapshot

	events chan tea.Msg
	help   help.Model
	keys   keyMap
	err    error
}

// NewModel creates a new TUI model wired to the application stores.
func NewModel(ctx context.Context, cat *catalog.Service, searchStore *search.Store, q *queue.Store, sb *sidebar.Controller, themes *theme.Store) *Model {
	input := textinput.New()
	input.Placeholder = "search songs, tags, artists"
	input.Prompt = "/ "
	input.CharLimit = 120

	m := &Model{
		ctx:         ctx,
		catalog:     cat,
		search:      searchStore,
		queue:       q,
		sidebar:     sb,
		themes:      themes,
		view:        BrowseView,
		searchInput: input,
		sidebarSnap: sb.State(),
		events:      make(chan tea.Msg, eventBuffer),
		help:        help.New(),
		keys:        newKeyMap(),
	}

	cat.SubscribeToChanges(func(catalog.Change) { m.push(catalogChangedMsg{}) })
	searchStore.Subscribe(func(snap search.Snapshot) { m.push(searchSnapshotMsg(snap)) })
	sb.Subscribe(func(snap sidebar.Snapshot) { m.push(sidebarSnapshotMsg(snap)) })
	themes.Subscribe(func(name string) { m.push(themeChangedMsg(name)) })

	return m
}

// push forwards a store event into the TUI loop without ever blocking the
// store's subscriber fan-out.
func (m *Model) push(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

// Init loads the catalog and starts draining store events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSongs(), m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.songList.SetSize(msg.Width-4, m.listHeight())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case songsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setSongs(msg.songs)
		return m, nil

	case catalogChangedMsg:
		return m, tea.Batch(m.loadSongs(), m.waitForEvent())

	case searchSnapshotMsg:
		m.searchSnap = search.Snapshot(msg)
		if m.searchSnap.Term != "" {
			m.setSongs(m.searchSnap.Results)
		}
		return m, m.waitForEvent()

	case sidebarSnapshotMsg:
		m.sidebarSnap = sidebar.Snapshot(msg)
		m.clampQueueCursor()
		return m, m.waitForEvent()

	case themeChangedMsg:
		// Styles are resolved from the store at render time; repaint only.
		return m, m.waitForEvent()
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	styles := m.themes.Styles()

	if m.err != nil {
		return styles.Error.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var body string
	switch m.view {
	case BrowseView:
		body = m.renderBrowse()
	case QueueView:
		body = m.renderQueue()
	}

	return fmt.Sprintf("%s\n%s\n%s", body, m.renderPlayerBar(), m.help.View(m.keys))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		m.sidebar.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.view = BrowseView
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.queue):
		if m.view == QueueView {
			m.view = BrowseView
		} else {
			m.view = QueueView
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.sidebar.TogglePlay()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.sidebar.Next()
		return m, nil
	case key.Matches(msg, m.keys.previous):
		m.sidebar.Previous()
		return m, nil
	case key.Matches(msg, m.keys.collapse):
		m.sidebar.SetCollapsed(!m.sidebarSnap.Collapsed)
		return m, nil
	case key.Matches(msg, m.keys.theme):
		m.cycleTheme()
		return m, nil
	}

	switch m.view {
	case BrowseView:
		return m.handleBrowseKeys(msg)
	case QueueView:
		return m.handleQueueKeys(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.search.RecordHistory(m.searchInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.search.SetTerm(m.searchInput.Value())
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.selectedSong(); ok {
			m.queue.PlayNow(item)
		}
		return m, nil
	case key.Matches(msg, m.keys.enqueue):
		if item, ok := m.selectedSong(); ok {
			m.queue.Add(item)
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		if m.searchSnap.Term != "" {
			m.search.SetTerm("")
			m.searchInput.SetValue("")
			return m, m.loadSongs()
		}
		return m, nil
	}

	return m.updateChildren(msg)
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.sidebarSnap.Queue.Items
	switch {
	case key.Matches(msg, m.keys.up):
		if m.queueCursor > 0 {
			m.queueCursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.queueCursor < len(items)-1 {
			m.queueCursor++
		}
	case key.Matches(msg, m.keys.enter):
		m.sidebar.SelectQueueIndex(m.queueCursor)
	case key.Matches(msg, m.keys.remove):
		if m.queueCursor >= 0 && m.queueCursor < len(items) {
			m.queue.Remove(items[m.queueCursor].URL)
		}
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
	}
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.listReady && m.view == BrowseView {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) renderBrowse() string {
	styles := m.themes.Styles()

	var b strings.Builder
	b.WriteString(m.searchInput.View())
	if m.searchSnap.ErrMsg != "" {
		b.WriteString("  " + styles.Warning.Render(m.searchSnap.ErrMsg))
	}
	b.WriteString("\n")

	if m.searching && len(m.searchSnap.Suggestions) > 0 {
		values := make([]string, len(m.searchSnap.Suggestions))
		for i, s := range m.searchSnap.Suggestions {
			values[i] = string(s.Kind) + ":" + s.Value
		}
		b.WriteString(styles.Subtle.Render(strings.Join(values, "  ")) + "\n")
	}

	if m.listReady {
		b.WriteString(m.songList.View())
	} else {
		b.WriteString(styles.Muted.Render("Loading catalog..."))
	}
	return b.String()
}

func (m *Model) renderQueue() string {
	styles := m.themes.Styles()
	snap := m.sidebarSnap.Queue

	var b strings.Builder
	b.WriteString(styles.Title.Render("Queue") + "\n\n")

	if len(snap.Items) == 0 {
		b.WriteString(styles.Muted.Render("Queue is empty. Enqueue songs from the browser with 'a'."))
		return b.String()
	}

	for i, item := range snap.Items {
		line := queueLine(item, i == snap.Current, i == m.queueCursor)
		switch {
		case i == snap.Current:
			b.WriteString(styles.Playing.Render(line))
		case i == m.queueCursor:
			b.WriteString(styles.Cursor.Render(line))
		default:
			b.WriteString(styles.Base.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPlayerBar draws the persistent sidebar player strip.
func (m *Model) renderPlayerBar() string {
	styles := m.themes.Styles()
	snap := m.sidebarSnap

	if snap.Collapsed {
		return styles.Sidebar.Render("♪ " + positionLabel(snap.Queue.Current, len(snap.Queue.Items)))
	}

	state := "▶"
	if snap.Playing {
		state = "❚❚"
	}

	parts := []string{state, trackLabel(snap.Queue.CurrentItem, snap.ActiveURL)}
	if pos := positionLabel(snap.Queue.Current, len(snap.Queue.Items)); pos != "" {
		parts = append(parts, pos)
	}
	if snap.Platform != models.PlatformUnknown {
		parts = append(parts, string(snap.Platform))
	}

	bar := strings.Join(parts, "  ")
	if snap.ErrMsg != "" {
		bar += "  " + styles.Error.Render(snap.ErrMsg)
	}

	transport := ""
	if !snap.CanPrevious {
		transport += styles.Subtle.Render(" ⏮")
	} else {
		transport += " ⏮"
	}
	if !snap.CanNext {
		transport += styles.Subtle.Render(" ⏭")
	} else {
		transport += " ⏭"
	}

	return styles.Sidebar.Render(bar + transport)
}

func (m *Model) cycleTheme() {
	switch m.themes.Name() {
	case theme.ThemeLight:
		m.themes.ChangeTheme(theme.ThemeDark)
	case theme.ThemeDark:
		m.themes.ChangeTheme(theme.ThemeOcean)
	default:
		m.themes.ChangeTheme(theme.ThemeLight)
	}
}

func (m *Model) selectedSong() (models.QueueItem, bool) {
	if !m.listReady {
		return models.QueueItem{}, false
	}
	selected := m.songList.SelectedItem()
	if selected == nil {
		return models.QueueItem{}, false
	}
	item, ok := selected.(songItem)
	if !ok {
		return models.QueueItem{}, false
	}
	return queueItemFromSong(item.song)
}

func (m *Model) setSongs(songs []models.Song) {
	if !m.listReady {
		m.songList = list.New(songItems(songs), list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = "Catalog"
		m.songList.SetShowHelp(false)
		m.songList.SetSize(m.width-4, m.listHeight())
		m.listReady = true
		return
	}
	m.songList.SetItems(songItems(songs))
}

func (m *Model) listHeight() int {
	h := m.height - 8
	if h < 4 {
		h = 4
	}
	return h
}

func (m *Model) clampQueueCursor() {
	if n := len(m.sidebarSnap.Queue.Items); m.queueCursor >= n {
		m.queueCursor = n - 1
	}
	if m.queueCursor < 0 {
		m.queueCursor = 0
	}
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.ListSongs(m.ctx)
		return songsLoadedMsg{songs: songs, err: err}
	}
}

// waitForEvent blocks on the store-event bridge and feeds the next snapshot
// into Update.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

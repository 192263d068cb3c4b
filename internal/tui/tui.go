package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/search"
)

const debounceDelay = 200 * time.Millisecond

// message types

type searchResultMsg struct {
	query   string
	results []search.Result
}

type debounceTickMsg struct {
	query string
}

type copiedMsg struct {
	what string
	err  error
}

// model

type model struct {
	rep         *analysis.Report
	tables      []render.Table
	headline    string
	query       string
	hits        []search.Result
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // avoids duplicate renders
	notice      string
	width       int
	height      int
	ready       bool
	quitting    bool

	// writeClipboard is swapped out in tests.
	writeClipboard func(string) error
}

func initialModel(rep *analysis.Report, opts render.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Buscar mensajes..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		rep:            rep,
		tables:         render.Tables(rep, opts),
		headline:       render.Headline(rep),
		filterInput:    ti,
		preview:        viewport.New(0, 0),
		writeClipboard: clipboard.WriteAll,
	}
}

// Run starts the TUI over a finished report and blocks until it exits.
func Run(rep *analysis.Report, opts render.Options) error {
	m := initialModel(rep, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init shows the first table.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCurrentPreview())
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Copy):
			return m, m.copyCurrent()

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items())-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newQuery := m.filterInput.Value()
		if strings.TrimSpace(newQuery) == "" && m.query != "" {
			// back to the tables right away
			m.query = ""
			m.hits = nil
			m.cursor, m.listOffset = 0, 0
			cmds = append(cmds, m.loadCurrentPreview())
		} else if strings.TrimSpace(newQuery) != "" && newQuery != m.query {
			cmds = append(cmds, scheduleDebouncedSearch(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		region, itemIdx := m.hitTest(msg.X, msg.Y)
		n := len(m.items())

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			maxOffset := n - m.panelHeight()/linesPerItem
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < n && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			return m, vpCmd
		}
		return m, nil

	case debounceTickMsg:
		// Only fire search if the input hasn't changed since debounce was scheduled
		if msg.query == m.filterInput.Value() {
			return m, m.doSearch(msg.query)
		}
		return m, nil

	case searchResultMsg:
		if msg.query != m.filterInput.Value() {
			return m, nil // stale
		}
		m.query = msg.query
		m.hits = msg.results
		m.cursor = 0
		m.listOffset = 0
		m.previewKey = ""
		if len(m.hits) == 0 {
			m.preview.SetContent("")
			return m, nil
		}
		return m, m.loadCurrentPreview()

	case previewRenderedMsg:
		if msg.key == m.previewKey || msg.key != m.currentKey() {
			return m, nil // duplicate or stale
		}
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
		m.previewKey = msg.key
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = "no se pudo copiar: " + msg.err.Error()
		} else {
			m.notice = msg.what + " copiado al portapapeles"
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.filterInput.View(), styleHeadline.Render(m.headline))

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 35% for list, minus border padding
	w := m.width*35/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 65% for preview, minus border padding
	w := m.width*65/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > listBoxRight+1 {
		return regionPreview, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	if m.notice != "" {
		return styleNotice.Render(m.notice)
	}
	var parts []string
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("%d resultados", len(m.hits)))
	} else {
		parts = append(parts, fmt.Sprintf("%d mensajes", len(m.rep.Records)))
	}
	parts = append(parts, "click/up/dn navegar")
	parts = append(parts, "scroll/C-u/C-d vista")
	parts = append(parts, "Enter copiar")
	parts = append(parts, "Esc salir")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) doSearch(query string) tea.Cmd {
	records := m.rep.Records
	return func() tea.Msg {
		return searchResultMsg{
			query:   query,
			results: search.Search(records, search.Options{Query: query, Limit: 500}),
		}
	}
}

func scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) currentItem() (item, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return item{}, false
	}
	return items[m.cursor], true
}

func (m model) currentKey() string {
	it, ok := m.currentItem()
	if !ok {
		return ""
	}
	return previewCacheKey(it, m.query)
}

func (m model) loadCurrentPreview() tea.Cmd {
	it, ok := m.currentItem()
	if !ok {
		return nil
	}
	key := previewCacheKey(it, m.query)
	if key == m.previewKey {
		return nil // already showing this preview
	}
	if it.table >= 0 {
		return loadTableCmd(key, m.tables[it.table])
	}
	hit := m.hits[it.hit]
	return loadConversationCmd(key, m.rep.Records, hit.Index, m.query, m.previewWidth())
}

// copyCurrent puts the selected table (as TSV) or the selected message on
// the clipboard.
func (m model) copyCurrent() tea.Cmd {
	it, ok := m.currentItem()
	if !ok {
		return nil
	}
	write := m.writeClipboard
	var text, what string
	if it.table >= 0 {
		t := m.tables[it.table]
		text, what = render.TSV(t), t.Title
	} else {
		r := m.rep.Records[m.hits[it.hit].Index]
		text = fmt.Sprintf("%s, %s - %s: %s", r.Date.Format("02/01/06"), r.Time, r.Sender, r.Body)
		what = "mensaje"
	}
	return func() tea.Msg {
		return copiedMsg{what: what, err: write(text)}
	}
}

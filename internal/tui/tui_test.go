package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
)

const export = `banner
15/06/23, 09:05 - Ana: Hola 😀 https://x.co
15/06/23, 09:40 - Bob: <Multimedia omitido>
15/06/23, 18:10 - Bob: mañana fiesta
16/06/23, 23:30 - Ana: la fiesta fue genial
`

func newTestModel(t *testing.T) model {
	t.Helper()
	rep, err := analysis.Analyze(strings.NewReader(export), analysis.Options{})
	require.NoError(t, err)
	m := initialModel(rep, render.Options{Stop: stats.DefaultStoplist()})
	return run(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// run applies msg, then keeps feeding back the message produced by each
// returned command until there is none. Batches and ticks are not followed.
func run(m model, msg tea.Msg) model {
	next, cmd := m.Update(msg)
	m = next.(model)
	for i := 0; i < 5 && cmd != nil; i++ {
		out := cmd()
		if out == nil {
			break
		}
		if _, isBatch := out.(tea.BatchMsg); isBatch {
			break
		}
		next, cmd = m.Update(out)
		m = next.(model)
	}
	return m
}

func TestItems_Tables(t *testing.T) {
	m := newTestModel(t)
	items := m.items()

	require.Len(t, items, 7)
	assert.Equal(t, "Tipos de mensaje", items[0].title)
	assert.Equal(t, "5 filas", items[0].detail)
	assert.Equal(t, "2 mensajes enviados por Ana", m.headline)
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t)

	m = run(m, tea.KeyMsg{Type: tea.KeyDown})
	m = run(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "table:2", m.previewKey)
	assert.Contains(t, m.preview.View(), "Miembro")

	m = run(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	for i := 0; i < 20; i++ {
		m = run(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 6, m.cursor)
}

func TestSearchResults(t *testing.T) {
	m := newTestModel(t)
	m.filterInput.SetValue("fiesta")

	m = run(m, debounceTickMsg{query: "fiesta"})
	require.Len(t, m.hits, 2)
	assert.Equal(t, "fiesta", m.query)

	items := m.items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, m.hits[0].Index)
	assert.Contains(t, items[0].title, "Bob")
	assert.Equal(t, "hit:0:fiesta", m.previewKey)

	// stale debounce ticks are ignored
	m2 := run(m, debounceTickMsg{query: "fies"})
	assert.Len(t, m2.hits, 2)
}

func TestCopy(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	m = run(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, strings.HasPrefix(copied, "Tipo\tCantidad\nMensajes\t4\n"))
	assert.Equal(t, "Tipos de mensaje copiado al portapapeles", m.notice)

	m.writeClipboard = func(string) error { return errors.New("sin xclip") }
	m = run(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "no se pudo copiar: sin xclip", m.notice)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(model).quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.(model).View())
}

func TestAdjustListScroll(t *testing.T) {
	m := model{cursor: 9}
	m.adjustListScroll(8) // 4 visible items
	assert.Equal(t, 6, m.listOffset)

	m.cursor = 2
	m.adjustListScroll(8)
	assert.Equal(t, 2, m.listOffset)
}

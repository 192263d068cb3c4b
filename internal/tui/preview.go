package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
}

func previewCacheKey(it item, query string) string {
	if it.table >= 0 {
		return fmt.Sprintf("table:%d", it.table)
	}
	return fmt.Sprintf("hit:%d:%s", it.hit, query)
}

// loadTableCmd renders a result table into the preview.
func loadTableCmd(key string, t render.Table) tea.Cmd {
	return func() tea.Msg {
		return previewRenderedMsg{key: key, content: render.TextTable(t), hitLine: -1}
	}
}

// loadConversationCmd renders the whole chat centered on a search hit.
func loadConversationCmd(key string, records []features.Record, hit int, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine := render.Conversation(records, render.ConversationOptions{
			Hit:     hit,
			Context: -1,
			Width:   width,
			Query:   query,
		})
		return previewRenderedMsg{key: key, content: content, hitLine: hitLine}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}

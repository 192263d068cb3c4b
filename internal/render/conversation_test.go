package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightKeywords(t *testing.T) {
	got := highlightKeywords("Fiesta en casa", "fiesta")
	assert.Equal(t, colorBoldRed+"Fiesta"+colorReset+" en casa", got)
	assert.Equal(t, "sin cambios", highlightKeywords("sin cambios", ""))
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef"}, wrapLine("abcdef", 4))
	assert.Equal(t, []string{"abcdef"}, wrapLine("abcdef", 0))
	assert.Equal(t, []string{"😀😀", "😀"}, wrapLine("😀😀😀", 4))
	// escape sequences take no columns
	assert.Equal(t, []string{colorDim + "abcd" + colorReset, "ef"}, wrapLine(colorDim+"abcd"+colorReset+"ef", 4))
}

func TestConversation_Window(t *testing.T) {
	recs := report(t).Records

	out, hitLine := Conversation(recs, ConversationOptions{Hit: 2, Context: 1})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, lines[0], "(1 mensajes antes)")
	assert.Contains(t, lines[hitLine], ">> Bob > 15/06/23 18:10 <<")
	assert.Contains(t, lines[len(lines)-1], "(1 mensajes después)")
	assert.NotContains(t, out, "Hola")
}

func TestConversation_All(t *testing.T) {
	recs := report(t).Records

	out, hitLine := Conversation(recs, ConversationOptions{Hit: -1})
	assert.Equal(t, -1, hitLine)
	assert.Contains(t, out, "Hola 😀 https://x.co")
	assert.Contains(t, out, "fiesta | total")
	assert.NotContains(t, out, "mensajes antes")

	out, _ = Conversation(nil, ConversationOptions{Hit: -1})
	assert.Equal(t, "(chat vacío)", out)
}

func TestConversation_ZeroContextShowsOnlyHit(t *testing.T) {
	recs := report(t).Records

	out, hitLine := Conversation(recs, ConversationOptions{Hit: 2, Context: 0})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Contains(t, lines[0], "(2 mensajes antes)")
	assert.Equal(t, 1, hitLine)
	assert.Contains(t, lines[hitLine], ">> Bob > 15/06/23 18:10 <<")
	assert.Contains(t, lines[len(lines)-1], "(2 mensajes después)")
	assert.NotContains(t, out, "Hola")
}

func TestConversation_NegativeContextShowsAll(t *testing.T) {
	recs := report(t).Records

	out, hitLine := Conversation(recs, ConversationOptions{Hit: 2, Context: -1})
	assert.Contains(t, out, "Hola 😀 https://x.co")
	assert.NotContains(t, out, "mensajes antes")
	assert.NotContains(t, out, "mensajes después")
	assert.Greater(t, hitLine, 0)
}

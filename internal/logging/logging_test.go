package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    zerolog.Level
	}{
		{"", false, zerolog.InfoLevel},
		{"warn", false, zerolog.WarnLevel},
		{"nonsense", false, zerolog.InfoLevel},
		{"error", true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		log := NewWithWriter(&bytes.Buffer{}, tt.level, tt.verbose)
		assert.Equal(t, tt.want, log.GetLevel(), "level %q verbose %v", tt.level, tt.verbose)
	}
}

func TestNewWithWriter_Output(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", false)

	log.Debug().Msg("hidden")
	log.Info().Str("chat", "grupo").Msg("parsed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "chat=grupo")
	assert.NotContains(t, out, "\x1b[")
}

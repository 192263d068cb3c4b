package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "minute precision", line: "28/03/23, 18:35 - Ana: hola", want: true},
		{name: "second precision", line: "28/03/23, 18:35:07 - Ana: hola", want: true},
		{name: "single digit day", line: "5/03/23, 9:05 - Ana: hola", want: true},
		{name: "leading zero day", line: "05/03/23, 09:05 - Ana: hola", want: true},
		{name: "no calendar check", line: "31/02/23, 10:00 - Ana: hola", want: true},
		{name: "space before separator", line: "28/03/23, 18:35  - Ana: hola", want: true},
		{name: "long hour", line: "28/03/23, 118:35 - Ana: hola", want: true},
		{name: "continuation", line: "y luego nos vemos", want: false},
		{name: "empty", line: "", want: false},
		{name: "day zero", line: "0/03/23, 18:35 - Ana: hola", want: false},
		{name: "day out of range", line: "32/03/23, 18:35 - Ana: hola", want: false},
		{name: "month without zero", line: "28/3/23, 18:35 - Ana: hola", want: false},
		{name: "month 13", line: "28/13/23, 18:35 - Ana: hola", want: false},
		{name: "four digit year", line: "28/03/2023, 18:35 - Ana: hola", want: false},
		{name: "single digit minute", line: "28/03/23, 18:5 - Ana: hola", want: false},
		{name: "missing dash", line: "28/03/23, 18:35 Ana: hola", want: false},
		{name: "date mid line", line: "ver 28/03/23, 18:35 - Ana", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartsEntry(tt.line))
		})
	}
}

func TestClassify_Fields(t *testing.T) {
	h, ok := Classify("7/11/24, 23:59:01 - Bob: x")
	require.True(t, ok)
	assert.Equal(t, Header{Day: "7", Month: "11", Year: "24", Hour: "23", Minute: "59", Second: "01"}, h)

	h, ok = Classify("07/11/24, 23:59 - Bob: x")
	require.True(t, ok)
	assert.Equal(t, "07", h.Day)
	assert.Empty(t, h.Second)
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "regular message",
			line: "28/03/23, 18:58 - Efrain pizarro soto: Ando en reu",
			want: Entry{Date: "28/03/23", Time: "18:58", Sender: "Efrain pizarro soto", Message: "Ando en reu"},
		},
		{
			name: "separators inside message survive",
			line: "28/03/23, 18:58 - Ana: nota: 3 - 2 = 1",
			want: Entry{Date: "28/03/23", Time: "18:58", Sender: "Ana", Message: "nota: 3 - 2 = 1"},
		},
		{
			name: "system event",
			line: "28/03/23, 18:58 - Ana changed the group icon",
			want: Entry{Date: "28/03/23", Time: "18:58", Sender: "Ana changed the group icon", System: true},
		},
		{
			name: "seconds kept raw",
			line: "28/03/23, 18:58:33 - Ana: hola",
			want: Entry{Date: "28/03/23", Time: "18:58:33", Sender: "Ana", Message: "hola"},
		},
		{
			name: "media sentinel",
			line: "28/03/23, 18:58 - Bob: <Multimedia omitido>",
			want: Entry{Date: "28/03/23", Time: "18:58", Sender: "Bob", Message: "<Multimedia omitido>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decompose(tt.line))
		})
	}
}

func TestSplitClock(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"09:05", 9, 5, true},
		{"9:05", 9, 5, true},
		{"23:59:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"118:35", 0, 0, false},
		{"12:60", 0, 0, false},
		{"1200", 0, 0, false},
	}
	for _, tt := range tests {
		h, m, ok := splitClock(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.hour, h, tt.in)
			assert.Equal(t, tt.minute, m, tt.in)
		}
	}
}

package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

const dayLabelLayout = "01/02/2006"

type HourCount struct {
	Range    string `json:"rangoHora"`
	Messages int    `json:"# Mensajes por hora"`
}

type DayCount struct {
	Date     time.Time `json:"-"`
	Label    string    `json:"Fecha"`
	Messages int       `json:"# Mensajes por día"`
}

// HourRange labels the one-hour bucket starting at hour, e.g. "18 - 19 h".
// The end wraps at midnight: "23 - 00 h".
func HourRange(hour int) string {
	return fmt.Sprintf("%02d - %02d h", hour, (hour+1)%24)
}

// HourRanges returns all 24 bucket labels in order.
func HourRanges() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = HourRange(h)
	}
	return out
}

// HourHistogram counts messages per one-hour bucket. Only buckets with at
// least one message are returned, ordered by label.
func HourHistogram(records []features.Record) []HourCount {
	var counts [24]int
	for _, r := range records {
		counts[r.Hour()]++
	}
	labels := HourRanges()
	var out []HourCount
	for h, n := range counts {
		if n > 0 {
			out = append(out, HourCount{Range: labels[h], Messages: n})
		}
	}
	return out
}

// DayHistogram counts messages per calendar day, oldest first.
func DayHistogram(records []features.Record) []DayCount {
	index := make(map[string]int) // ISO date -> position in out
	var out []DayCount
	for _, r := range records {
		key := r.Date.Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DayCount{Date: r.Date, Label: r.Date.Format(dayLabelLayout)})
		}
		out[i].Messages++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

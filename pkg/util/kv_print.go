package util

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	ColorCritical = lipgloss.Color("#cc0000")
	ColorWarning  = lipgloss.Color("#e69138")
	ColorOk       = lipgloss.Color("#04B575")
	ColorUnknown  = lipgloss.Color("#68228B")
)

func OkStyle([]any) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorOk)
}

func CriticalStyle([]any) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorCritical)
}

// KeyValuePair is one line of key/value output. Value is rendered with Format and
// colored with Style (if set).
type KeyValuePair struct {
	Key    string
	Format string
	Value  []any
	Style  func([]any) lipgloss.Style
}

var keyStyle = lipgloss.NewStyle().Bold(true)

// PrintKeyValues renders the pairs as aligned "key: value" lines.
func PrintKeyValues(values []KeyValuePair) string {
	width := 0
	for _, kv := range values {
		width = max(width, len(kv.Key)+1)
	}

	lines := make([]string, 0, len(values))
	for _, kv := range values {
		value := fmt.Sprintf(kv.Format, kv.Value...)
		if kv.Style != nil {
			value = kv.Style(kv.Value).Render(value)
		}
		lines = append(lines, keyStyle.Width(width+1).Render(kv.Key+":")+value)
	}
	return strings.Join(lines, "\n")
}

// Package render draws the calculator screen on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/codex-k8s/calcctl/internal/keypad"
)

// ellipsis marks a display that was cut on the left.
const ellipsis = "…"

// cellWidth is the inner width of one keypad column.
const cellWidth = 5

// Display right-aligns text in a line of width runes. Longer text keeps its
// rightmost width-1 runes behind an ellipsis. A non-positive width returns
// text unchanged.
func Display(text string, width int) string {
	if width <= 0 {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n <= width {
		return strings.Repeat(" ", width-n) + text
	}
	runes := []rune(text)
	return ellipsis + string(runes[n-width+1:])
}

// Keypad writes the button grid, one bordered row per keypad row.
func Keypad(w io.Writer, rows [][]keypad.Button) error {
	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", keypad.Columns) + "\n"
	if _, err := io.WriteString(w, border); err != nil {
		return err
	}
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("|")
		for _, button := range row {
			span := button.Span
			if span < 1 {
				span = 1
			}
			inner := cellWidth*span + span - 1
			b.WriteString(center(button.Key.Label(), inner))
			b.WriteString("|")
		}
		b.WriteString("\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, border); err != nil {
			return err
		}
	}
	return nil
}

// Screen writes the display line framed to the keypad width, followed by the keypad.
func Screen(w io.Writer, display string, rows [][]keypad.Button) error {
	inner := cellWidth*keypad.Columns + keypad.Columns - 1
	if _, err := fmt.Fprintf(w, "|%s|\n", Display(display, inner)); err != nil {
		return err
	}
	return Keypad(w, rows)
}

func center(label string, width int) string {
	n := utf8.RuneCountInString(label)
	if n >= width {
		return label
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", width-n-left)
}

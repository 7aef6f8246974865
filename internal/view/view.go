// Package view provides output formatting for zendown commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an output format name. The empty string selects the table format.
func ValidateFormat(format string) error {
	switch Format(format) {
	case "", FormatTable, FormatJSON, FormatPlain:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
	}
}

// Field is one labelled value with the place it came from, as listed by
// config show.
type Field struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source,omitempty"`
}

// Renderer writes command output in one format.
type Renderer struct {
	format Format
	w      io.Writer
}

// NewRenderer creates a renderer writing to stdout. An empty format is table.
func NewRenderer(format Format, noColor bool) *Renderer {
	if format == "" {
		format = FormatTable
	}
	if noColor {
		color.NoColor = true
	}
	return &Renderer{format: format, w: os.Stdout}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.w = w
}

// Human reports whether output is meant for a terminal rather than a script.
func (r *Renderer) Human() bool {
	return r.format == FormatTable
}

// RenderTable writes rows under headers. Tables are column aligned, plain
// output is tab separated without headers and JSON is an array of objects
// keyed by the lower-cased headers.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		_ = r.RenderJSON(rowObjects(headers, rows))
	case FormatPlain:
		for _, row := range rows {
			fmt.Fprintln(r.w, strings.Join(row, "\t"))
		}
	default:
		r.renderAligned(headers, rows)
	}
}

func rowObjects(headers []string, rows [][]string) []map[string]string {
	objects := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[strings.ToLower(h)] = row[i]
			}
		}
		objects = append(objects, obj)
	}
	return objects
}

func (r *Renderer) renderAligned(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	bold := color.New(color.Bold)
	r.writeRow(headers, widths, bold.Sprint)
	for _, row := range rows {
		r.writeRow(row, widths, fmt.Sprint)
	}
}

// writeRow pads every cell but the last to its column width.
func (r *Renderer) writeRow(cells []string, widths []int, style func(...interface{}) string) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(style(cell))
		if i < len(cells)-1 && i < len(widths) {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	fmt.Fprintln(r.w, b.String())
}

// RenderFields writes labelled values. Table and plain output show the
// source in parentheses after each value.
func (r *Renderer) RenderFields(fields []Field) error {
	if r.format == FormatJSON {
		return r.RenderJSON(fields)
	}

	width := 0
	for _, f := range fields {
		width = max(width, utf8.RuneCountInString(f.Key)+1)
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, f := range fields {
		label := f.Key + ":"
		_, _ = bold.Fprint(r.w, label+strings.Repeat(" ", width-utf8.RuneCountInString(label)+1))
		fmt.Fprint(r.w, f.Value)
		if f.Source != "" {
			_, _ = faint.Fprintf(r.w, "  (source: %s)", f.Source)
		}
		fmt.Fprintln(r.w)
	}
	return nil
}

// RenderJSON writes v as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.w, string(data))
	return nil
}

// RenderText writes a line of text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.w, text)
}

// Success writes a green, check-marked message.
func (r *Renderer) Success(format string, args ...interface{}) {
	_, _ = color.New(color.FgGreen).Fprintln(r.w, "✓ "+fmt.Sprintf(format, args...))
}

// Warning writes a yellow message.
func (r *Renderer) Warning(format string, args ...interface{}) {
	_, _ = color.New(color.FgYellow).Fprintln(r.w, "! "+fmt.Sprintf(format, args...))
}

// Error writes a red, crossed message.
func (r *Renderer) Error(format string, args ...interface{}) {
	_, _ = color.New(color.FgRed).Fprintln(r.w, "✗ "+fmt.Sprintf(format, args...))
}

// Note writes a dimmed message.
func (r *Renderer) Note(format string, args ...interface{}) {
	_, _ = color.New(color.Faint).Fprintln(r.w, fmt.Sprintf(format, args...))
}

// Truncate shortens s to at most maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

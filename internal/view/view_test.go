package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(format Format) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRenderer(format, true)
	r.SetWriter(&buf)
	return r, &buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"table", false},
		{"json", false},
		{"plain", false},
		{"xml", true},
		{"TABLE", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
				assert.Contains(t, err.Error(), "table, json, plain")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"fits", "hs-callout-type-note", 40, "hs-callout-type-note"},
		{"exact", "hello", 5, "hello"},
		{"cut with ellipsis", "hs-callout-type-notes", 12, "hs-callou..."},
		{"very short max", "hello", 3, "hel"},
		{"counts runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestRenderTable(t *testing.T) {
	headers := []string{"KIND", "LABEL"}
	rows := [][]string{
		{"Note", "hs-callout-type-note"},
		{"Warning", "hs-callout-type-warning"},
	}

	t.Run("table aligns columns", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		r.RenderTable(headers, rows)

		assert.Equal(t, strings.Join([]string{
			"KIND     LABEL",
			"Note     hs-callout-type-note",
			"Warning  hs-callout-type-warning",
		}, "\n")+"\n", buf.String())
	})

	t.Run("plain is tab separated without headers", func(t *testing.T) {
		r, buf := newTestRenderer(FormatPlain)
		r.RenderTable(headers, rows)

		assert.Equal(t, "Note\ths-callout-type-note\nWarning\ths-callout-type-warning\n", buf.String())
	})

	t.Run("json keys by lower-cased header", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		r.RenderTable(headers, rows)

		var result []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		require.Len(t, result, 2)
		assert.Equal(t, map[string]string{"kind": "Warning", "label": "hs-callout-type-warning"}, result[1])
	})
}

func TestRenderTable_Empty(t *testing.T) {
	t.Run("table keeps headers", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		r.RenderTable([]string{"FILE", "LINE"}, nil)
		assert.Equal(t, "FILE  LINE\n", buf.String())
	})

	t.Run("json is an empty array", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		r.RenderTable([]string{"FILE", "LINE"}, nil)
		assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
	})
}

func TestRenderTable_ShortRow(t *testing.T) {
	r, buf := newTestRenderer(FormatJSON)
	r.RenderTable([]string{"FILE", "LINE", "STATUS"}, [][]string{{"a.md", "3"}})

	var result []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	_, exists := result[0]["status"]
	assert.False(t, exists)
}

func TestRenderFields(t *testing.T) {
	fields := []Field{
		{Key: "Log level", Value: "warn", Source: "default"},
		{Key: "Unknown callouts", Value: "error", Source: "ZENDOWN_UNKNOWN_CALLOUTS"},
	}

	t.Run("table", func(t *testing.T) {
		r, buf := newTestRenderer(FormatTable)
		require.NoError(t, r.RenderFields(fields))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Log level:        warn  (source: default)", lines[0])
		assert.Equal(t, "Unknown callouts: error  (source: ZENDOWN_UNKNOWN_CALLOUTS)", lines[1])
	})

	t.Run("json", func(t *testing.T) {
		r, buf := newTestRenderer(FormatJSON)
		require.NoError(t, r.RenderFields(fields))

		var result []Field
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, fields, result)
	})

	t.Run("no source", func(t *testing.T) {
		r, buf := newTestRenderer(FormatPlain)
		require.NoError(t, r.RenderFields([]Field{{Key: "Kind", Value: "Tip"}}))
		assert.Equal(t, "Kind: Tip\n", buf.String())
	})
}

func TestRenderer_Messages(t *testing.T) {
	tests := []struct {
		name   string
		render func(r *Renderer)
		want   string
	}{
		{"success", func(r *Renderer) { r.Success("saved to %s", "a.yml") }, "✓ saved to a.yml\n"},
		{"warning", func(r *Renderer) { r.Warning("%d unrecognized", 2) }, "! 2 unrecognized\n"},
		{"error", func(r *Renderer) { r.Error("pandoc check failed") }, "✗ pandoc check failed\n"},
		{"note", func(r *Renderer) { r.Note("Config file: %s", "a.yml") }, "Config file: a.yml\n"},
		{"text", func(r *Renderer) { r.RenderText("No callouts found.") }, "No callouts found.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(FormatTable)
			tt.render(r)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderJSON(t *testing.T) {
	r, buf := newTestRenderer(FormatJSON)
	require.NoError(t, r.RenderJSON(map[string]int{"count": 5}))
	assert.JSONEq(t, `{"count": 5}`, buf.String())
}

func TestNewRenderer_EmptyFormatIsTable(t *testing.T) {
	r, _ := newTestRenderer("")
	assert.True(t, r.Human())

	r, _ = newTestRenderer(FormatPlain)
	assert.False(t, r.Human())
}

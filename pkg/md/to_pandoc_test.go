package md

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/zendown/pkg/callout"
	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

func blocksJSON(t *testing.T, doc *pandoc.Document) string {
	t.Helper()
	data, err := json.Marshal(doc.Blocks)
	require.NoError(t, err)
	return string(data)
}

func TestToPandoc(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraph",
			input:    "Hello world",
			expected: `[{"t":"Para","c":[{"t":"Str","c":"Hello"},{"t":"Space"},{"t":"Str","c":"world"}]}]`,
		},
		{
			name:     "heading with auto id",
			input:    "# Title",
			expected: `[{"t":"Header","c":[1,["title",[],[]],[{"t":"Str","c":"Title"}]]}]`,
		},
		{
			name:     "heading with attributes",
			input:    "## Setup {#custom .cls}",
			expected: `[{"t":"Header","c":[2,["custom",["cls"],[]],[{"t":"Str","c":"Setup"}]]}]`,
		},
		{
			name:  "emphasis and strong",
			input: "*a* **b**",
			expected: `[{"t":"Para","c":[
				{"t":"Emph","c":[{"t":"Str","c":"a"}]},
				{"t":"Space"},
				{"t":"Strong","c":[{"t":"Str","c":"b"}]}
			]}]`,
		},
		{
			name:     "inline code",
			input:    "run `make`",
			expected: `[{"t":"Para","c":[{"t":"Str","c":"run"},{"t":"Space"},{"t":"Code","c":[["",[],[]],"make"]}]}]`,
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			expected: `[{"t":"Para","c":[{"t":"Strikeout","c":[{"t":"Str","c":"gone"}]}]}]`,
		},
		{
			name:     "link with title",
			input:    `[site](https://example.com "T")`,
			expected: `[{"t":"Para","c":[{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"site"}],["https://example.com","T"]]}]}]`,
		},
		{
			name:     "autolink",
			input:    "<https://example.com>",
			expected: `[{"t":"Para","c":[{"t":"Link","c":[["",["uri"],[]],[{"t":"Str","c":"https://example.com"}],["https://example.com",""]]}]}]`,
		},
		{
			name:     "soft break",
			input:    "one\ntwo",
			expected: `[{"t":"Para","c":[{"t":"Str","c":"one"},{"t":"SoftBreak"},{"t":"Str","c":"two"}]}]`,
		},
		{
			name:     "entity reference",
			input:    "Tom &amp; Jerry",
			expected: `[{"t":"Para","c":[{"t":"Str","c":"Tom"},{"t":"Space"},{"t":"Str","c":"&"},{"t":"Space"},{"t":"Str","c":"Jerry"}]}]`,
		},
		{
			name:     "bullet list",
			input:    "- a\n- b",
			expected: `[{"t":"BulletList","c":[[{"t":"Plain","c":[{"t":"Str","c":"a"}]}],[{"t":"Plain","c":[{"t":"Str","c":"b"}]}]]}]`,
		},
		{
			name:     "ordered list",
			input:    "3. x",
			expected: `[{"t":"OrderedList","c":[[3,{"t":"Decimal"},{"t":"Period"}],[[{"t":"Plain","c":[{"t":"Str","c":"x"}]}]]]}]`,
		},
		{
			name:     "ordered list with paren delimiter",
			input:    "1) x",
			expected: `[{"t":"OrderedList","c":[[1,{"t":"Decimal"},{"t":"OneParen"}],[[{"t":"Plain","c":[{"t":"Str","c":"x"}]}]]]}]`,
		},
		{
			name:     "block quote",
			input:    "> q",
			expected: `[{"t":"BlockQuote","c":[{"t":"Para","c":[{"t":"Str","c":"q"}]}]}]`,
		},
		{
			name:     "horizontal rule",
			input:    "---",
			expected: `[{"t":"HorizontalRule"}]`,
		},
		{
			name:     "fenced code",
			input:    "```go\nfmt.Println()\n```",
			expected: `[{"t":"CodeBlock","c":[["",["go"],[]],"fmt.Println()"]}]`,
		},
		{
			name:     "comments are dropped",
			input:    "<!-- draft -->\n\ntext",
			expected: `[{"t":"Para","c":[{"t":"Str","c":"text"}]}]`,
		},
		{
			name:     "fenced div",
			input:    "::: {.hs-callout-type-note #n key=v}\nHi\n:::",
			expected: `[{"t":"Div","c":[["n",["hs-callout-type-note"],[["key","v"]]],[{"t":"Para","c":[{"t":"Str","c":"Hi"}]}]]}]`,
		},
		{
			name:     "empty div",
			input:    "::: note\n:::",
			expected: `[{"t":"Div","c":[["",["note"],[]],[]]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.expected, blocksJSON(t, ToPandoc([]byte(tt.input))))
		})
	}
}

func TestToPandoc_Empty(t *testing.T) {
	doc := ToPandoc(nil)
	assert.Empty(t, doc.Blocks)
	assert.Equal(t, pandoc.APIVersion, doc.APIVersion)
}

func TestToPandoc_CalloutFilter(t *testing.T) {
	input := `Intro

::: {.hs-callout-type-warning}
Back up first.

::: {.hs-callout-type-tip}
Use rsync.
:::
:::

::: {.hs-callout-type-notes}
Typo.
:::
`
	doc := ToPandoc([]byte(input))
	filter, report := callout.NewFilter(callout.Options{Policy: callout.PolicyIgnore})
	require.NoError(t, pandoc.Apply(doc, filter))

	expected := `[
		{"t":"Para","c":[{"t":"Str","c":"Intro"}]},
		{"t":"Div","c":[["",["hs-callout-type-warning"],[]],[
			{"t":"RawBlock","c":["latex","\\begin{Warning}"]},
			{"t":"Para","c":[{"t":"Str","c":"Back"},{"t":"Space"},{"t":"Str","c":"up"},{"t":"Space"},{"t":"Str","c":"first."}]},
			{"t":"Div","c":[["",["hs-callout-type-tip"],[]],[
				{"t":"RawBlock","c":["latex","\\begin{Tip}"]},
				{"t":"Para","c":[{"t":"Str","c":"Use"},{"t":"Space"},{"t":"Str","c":"rsync."}]},
				{"t":"RawBlock","c":["latex","\\end{Tip}"]}
			]]},
			{"t":"RawBlock","c":["latex","\\end{Warning}"]}
		]]},
		{"t":"Div","c":[["",["hs-callout-type-notes"],[]],[
			{"t":"Para","c":[{"t":"Str","c":"Typo."}]}
		]]}
	]`
	assert.JSONEq(t, expected, blocksJSON(t, doc))
	assert.Equal(t, 2, report.Wrapped())
	assert.Equal(t, []string{"hs-callout-type-notes"}, report.Unknown())
}

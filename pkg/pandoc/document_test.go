package pandoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[{"t":"Str","c":"Hello"}]}]}`

	doc, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 23, 1}, doc.APIVersion)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, TypePara, doc.Blocks[0].Type)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		version bool
	}{
		{"not json", "# markdown", "failed to decode", false},
		{"missing version", `{"meta":{},"blocks":[]}`, "unsupported pandoc API version", true},
		{"future major version", `{"pandoc-api-version":[2,0],"meta":{},"blocks":[]}`, "unsupported pandoc API version", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			if tt.version {
				assert.ErrorIs(t, err, ErrUnsupportedVersion)
			}
		})
	}
}

func TestRead_FillsMissingMetaAndBlocks(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"pandoc-api-version":[1,22]}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(doc.Meta))
	assert.NotNil(t, doc.Blocks)
	assert.Empty(t, doc.Blocks)
}

func TestWrite(t *testing.T) {
	doc := NewDocument(RawBlock{Format: "html", Text: "<hr>"}.Element())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, `"pandoc-api-version":[1,23,1]`)
	assert.Contains(t, out, `"meta":{}`)
	assert.JSONEq(t, `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"RawBlock","c":["html","<hr>"]}]}`, out)
}

func TestNewDocument_EmptyBlocksEncodeAsList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDocument()))
	assert.Contains(t, buf.String(), `"blocks":[]`)
}

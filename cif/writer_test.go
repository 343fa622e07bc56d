package cif

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoundTrip(t *testing.T) {
	original := parseString(t, sampleCIF)

	var b strings.Builder
	_, err := original.WriteTo(&b)
	require.NoError(t, err)

	reparsed, err := NewParser(strings.NewReader(b.String())).Parse()
	require.NoError(t, err)

	if diff := cmp.Diff(original, reparsed); diff != "" {
		t.Errorf("CIF does not survive a write/parse round trip (-want +got):\n%s", diff)
	}
}

func TestQuoteValue(t *testing.T) {
	cases := map[string]string{
		"bare":         "bare",
		"with space":   "'with space'",
		"it's quoted":  `"it's quoted"`,
		"_leading":     "'_leading'",
		"loop_":        "'loop_'",
		"data_x":       "'data_x'",
		"":             "''",
		".":            ".",
		"?":            "?",
		"-6.504":       "-6.504",
	}

	for input, want := range cases {
		assert.Equal(t, want, quoteValue(input), "quoting %q", input)
	}
}

func TestWriteTextField(t *testing.T) {
	c := &CIF{DataBlocks: []*DataBlock{{
		Name: "b",
		Entries: []any{
			&Item{Tag: "_note.text", Value: "line one\nline two"},
		},
	}}}

	var b strings.Builder
	_, err := c.WriteTo(&b)
	require.NoError(t, err)
	assert.Contains(t, b.String(), "_note.text\n;line one\nline two\n;\n")

	reparsed, err := NewParser(strings.NewReader(b.String())).Parse()
	require.NoError(t, err)
	text, ok := reparsed.DataBlock("b").Value("_note.text")
	require.True(t, ok)
	assert.Equal(t, "line one\nline two", text)
}

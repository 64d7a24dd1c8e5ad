package exampleio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrxzhy/TEES/example"
	"github.com/lrxzhy/TEES/exampleio"
	"github.com/lrxzhy/TEES/features"
)

func records() []example.Record {
	return []example.Record{
		{
			ID: "d0.s0.x0", Class: 2, Category: "Binding",
			Features: features.Vector{12: 1, 3: 0.5, 7: 2},
			Extra:    example.Extra{XType: "edge", Type: "i", T1: "bt_0", T2: "bt_2"},
		},
		{
			ID: "d0.s0.x1", Class: 1, Category: "neg",
			Features: features.Vector{1: 1},
			Extra:    example.Extra{XType: "edge", Type: "i", T1: "bt_0", T2: "bt_2", DepRev: true},
		},
	}
}

func TestSVMLightWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exampleio.WriteAll(exampleio.NewSVMLightWriter(&buf), records()))
	assert.Equal(t,
		"2 3:0.5 7:2 12:1 # d0.s0.x0\n"+
			"1 1:1 # d0.s0.x1\n",
		buf.String())
}

func TestJSONL_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := exampleio.New(exampleio.FormatJSONL, &buf)
	require.NoError(t, err)
	require.NoError(t, exampleio.WriteAll(w, records()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"deprev":true`)
	assert.Contains(t, lines[0], `"12":1`)

	got, err := exampleio.ReadJSONL(&buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(records(), got))
}

func TestReadJSONL_Lines(t *testing.T) {
	var buf bytes.Buffer
	w := exampleio.NewJSONLWriter(&buf)
	require.NoError(t, exampleio.WriteAll(w, records()[:1]))
	single := buf.String()
	require.True(t, strings.HasSuffix(single, "\n"))

	got, err := exampleio.ReadJSONL(strings.NewReader(single))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(records()[:1], got), "trailing newline ends the stream cleanly")

	got, err = exampleio.ReadJSONL(strings.NewReader("\n" + single + "\n\n" + single))
	require.NoError(t, err)
	assert.Len(t, got, 2, "blank lines are skipped")

	got, err = exampleio.ReadJSONL(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = exampleio.ReadJSONL(strings.NewReader(single + "{\"id\":"))
	assert.ErrorContains(t, err, "decode line 2")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := exampleio.New("arff", &bytes.Buffer{})
	assert.ErrorIs(t, err, exampleio.ErrUnknownFormat)

	w, err := exampleio.New("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &exampleio.SVMLightWriter{}, w)
}

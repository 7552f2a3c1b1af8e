package quake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegend(t *testing.T) {
	entries := Legend()
	require.Len(t, entries, 9)

	for i, e := range entries {
		assert.Equal(t, i, e.Lower)
		assert.Equal(t, ColorOf(float64(i+1)), e.Color)
	}

	assert.Equal(t, "Magnitude 0–1", entries[0].Label())
	assert.Equal(t, "Magnitude 4–5", entries[4].Label())
	assert.Equal(t, "Magnitude 8+", entries[8].Label())
	assert.Nil(t, entries[8].Upper)
}

func TestLegendHTML(t *testing.T) {
	out := LegendHTML(Legend())

	rows := strings.Split(out, "<br>")
	require.Len(t, rows, 9)
	assert.Equal(t, `<i style="background:rgb(255,225,225)">&nbsp;&nbsp;</i> Magnitude 0&ndash;1`, rows[0])
	assert.Equal(t, `<i style="background:rgb(255,0,0)">&nbsp;&nbsp;</i> Magnitude 8+`, rows[8])
}

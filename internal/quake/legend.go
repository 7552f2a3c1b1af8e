package quake

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// legendBands is the number of legend rows; the last one is open ended.
const legendBands = 9

// LegendEntry describes one magnitude band.
type LegendEntry struct {
	Color Color `json:"color" yaml:"color"`
	Lower int   `json:"lower" yaml:"lower"`
	Upper *int  `json:"upper,omitempty" yaml:"upper,omitempty"`
}

// Label is the human readable band, e.g. "Magnitude 3–4" or "Magnitude 8+".
func (e LegendEntry) Label() string {
	if e.Upper == nil {
		return "Magnitude " + strconv.Itoa(e.Lower) + "+"
	}

	return "Magnitude " + strconv.Itoa(e.Lower) + "–" + strconv.Itoa(*e.Upper)
}

// Legend returns the bands 0–1 through 8+. Each swatch uses the color of lower+1.
func Legend() []LegendEntry {
	return lo.Times(legendBands, func(i int) LegendEntry {
		e := LegendEntry{Lower: i, Color: ColorOf(float64(i + 1))}
		if i < legendBands-1 {
			e.Upper = lo.ToPtr(i + 1)
		}

		return e
	})
}

// LegendHTML renders the entries as swatch rows joined by line breaks.
func LegendHTML(entries []LegendEntry) string {
	rows := lo.Map(entries, func(e LegendEntry, _ int) string {
		label := strings.Replace(e.Label(), "–", "&ndash;", 1)
		return `<i style="background:` + e.Color.String() + `">&nbsp;&nbsp;</i> ` + label
	})

	return strings.Join(rows, "<br>")
}

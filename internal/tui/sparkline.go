package tui

import (
	"math"
	"slices"
	"strings"
)

// sparkRunes are the eight block heights of a sparkline, lowest first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one block per value, scaled between lo and hi. Values
// outside the range are clamped; hi <= lo draws every block at the bottom.
func Sparkline(values []float64, lo, hi float64) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteRune(sparkRunes[level(v, lo, hi, len(sparkRunes))])
	}
	return b.String()
}

// level maps v within [lo, hi] onto 0..steps-1.
func level(v, lo, hi float64, steps int) int {
	if hi <= lo || math.IsNaN(v) {
		return 0
	}
	n := int((v - lo) / (hi - lo) * float64(steps-1))
	return min(max(n, 0), steps-1)
}

// brailleBits[col][row] is the dot of a braille cell in the given column
// (0 left, 1 right) and row (0 top).
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank rune = 0x2800

// BrailleChart plots values as dots on a grid of width x rows braille cells,
// each cell two dots wide and four tall. The newest value is in the right
// column and the vertical axis runs from 0 to the largest plotted value.
func BrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	cols, dots := 2*width, 4*rows
	if len(values) > cols {
		values = values[len(values)-cols:]
	}
	top := slices.Max(values)

	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(brailleBlank), width))
	}
	offset := cols - len(values)
	for i, v := range values {
		x := offset + i
		y := dots - 1 - level(v, 0, top, dots)
		cells[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	out := make([]string, rows)
	for r, row := range cells {
		out[r] = string(row)
	}
	return out
}

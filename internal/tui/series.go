package tui

// Series keeps the most recent percentages (0..100) plotted by the
// dashboard. Capacity is the number of cells the plot can show.
type Series struct {
	values []float64
	limit  int
}

// NewSeries returns an empty series holding at most limit samples.
func NewSeries(limit int) *Series {
	return &Series{limit: max(limit, 1)}
}

// Push appends v and drops the oldest sample when the series is full.
func (s *Series) Push(v float64) {
	if len(s.values) == s.limit {
		copy(s.values, s.values[1:])
		s.values = s.values[:s.limit-1]
	}
	s.values = append(s.values, v)
}

func (s *Series) Len() int { return len(s.values) }

func (s *Series) Cap() int { return s.limit }

// Last returns the newest sample, 0 when empty.
func (s *Series) Last() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

// Values returns a copy of the samples, oldest first, or nil when empty.
func (s *Series) Values() []float64 {
	if len(s.values) == 0 {
		return nil
	}
	return append([]float64(nil), s.values...)
}

// Resize changes the capacity and keeps the newest samples that fit.
func (s *Series) Resize(limit int) {
	s.limit = max(limit, 1)
	if extra := len(s.values) - s.limit; extra > 0 {
		s.values = append(s.values[:0], s.values[extra:]...)
	}
}

func (s *Series) Reset() { s.values = s.values[:0] }

// level maps a percentage onto 0..steps-1.
func level(pct float64, steps int) int {
	pct = min(max(pct, 0), 100)
	return min(int(pct/100*float64(steps-1)+0.5), steps-1)
}

var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders one block character per percentage.
func Sparkline(values []float64) string {
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = blocks[level(v, len(blocks))]
	}
	return string(out)
}

// Bit of each dot in a braille cell, indexed by [column][row].
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// BrailleChart plots percentages as one dot per sample on a grid of rows
// lines by width cells. Each cell holds 2x4 dots. The newest sample is in
// the rightmost dot column; older samples that do not fit are dropped.
func BrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	cols, height := 2*width, 4*rows
	if len(values) > cols {
		values = values[len(values)-cols:]
	}
	offset := cols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = brailleBlank
		}
	}
	for i, v := range values {
		x := offset + i
		y := height - 1 - level(v, height)
		grid[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = string(cells)
	}
	return lines
}

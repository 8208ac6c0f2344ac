package tui

import (
	"strings"
	"testing"
	"time"
)

var testAlgos = []string{"auto", "schoolbook", "karatsuba"}

func testRow(words int, durations ...time.Duration) sweepRow {
	row := sweepRow{Words: words, Durations: durations, Failed: make([]bool, len(durations)), Winner: -1}
	for i, d := range durations {
		if row.Winner < 0 || d < durations[row.Winner] {
			row.Winner = i
		}
	}
	return row
}

func TestChartModel_AddRow(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetSize(60, 20)

	c.AddRow(testRow(16, 2*time.Millisecond, 4*time.Millisecond, time.Millisecond))

	want := []float64{50, 25, 100}
	for i, w := range want {
		if got := c.speed[i].Last(); got != w {
			t.Errorf("speed[%s] = %f, want %f", testAlgos[i], got, w)
		}
	}
}

func TestChartModel_AddRow_Failed(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)

	row := testRow(16, time.Millisecond, time.Millisecond, time.Millisecond)
	row.Failed[1] = true
	c.AddRow(row)
	if got := c.speed[1].Last(); got != 0 {
		t.Errorf("failed algorithm speed = %f, want 0", got)
	}

	c.AddRow(sweepRow{Words: 32, Durations: make([]time.Duration, 3), Failed: []bool{true, true, true}, Winner: -1})
	for i := range testAlgos {
		if c.speed[i].Last() != 0 {
			t.Errorf("speed[%d] = %f after all-failed row, want 0", i, c.speed[i].Last())
		}
	}
}

func TestChartModel_Reset(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.AddRow(testRow(16, time.Millisecond, time.Millisecond, time.Millisecond))
	c.SetProgress(0.5, time.Second)
	c.SetDone(time.Second)

	c.Reset()

	if c.progress != 0 || c.done {
		t.Errorf("after Reset: progress %f done %v", c.progress, c.done)
	}
	for i, rb := range c.speed {
		if rb.Len() != 0 {
			t.Errorf("speed[%d] has %d samples after Reset", i, rb.Len())
		}
	}
}

func TestChartModel_SetSize_ResizesBuffers(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetSize(60, 15)

	want := 60 - sparkLabelWidth
	for i, rb := range c.speed {
		if rb.Cap() != want {
			t.Errorf("speed[%d] cap = %d, want %d", i, rb.Cap(), want)
		}
	}
}

func TestChartModel_SetProgress_Clamps(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetProgress(1.7, 0)
	if c.progress != 1 {
		t.Errorf("progress = %f, want 1", c.progress)
	}
	c.SetProgress(-1, 0)
	if c.progress != 0 {
		t.Errorf("progress = %f, want 0", c.progress)
	}
}

func TestChartModel_RenderProgressBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		progress float64
		contains []string
	}{
		{"zero", 0, []string{"░", "0.0%", "ETA:"}},
		{"half", 0.5, []string{"█", "░", "50.0%"}},
		{"full", 1, []string{"█", "100.0%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewChartModel(testAlgos)
			c.SetSize(60, 10)
			c.SetProgress(tt.progress, 10*time.Second)
			bar := c.renderProgressBar()
			for _, s := range tt.contains {
				if !strings.Contains(bar, s) {
					t.Errorf("progress bar %q does not contain %q", bar, s)
				}
			}
		})
	}
}

func TestChartModel_RenderProgressBar_TooNarrow(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetSize(20, 5)
	if bar := c.renderProgressBar(); bar != "" {
		t.Errorf("expected empty progress bar for a narrow chart, got %q", bar)
	}
}

func TestChartModel_RenderProgressBar_Done(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetSize(60, 10)
	c.SetDone(1500 * time.Millisecond)
	bar := c.renderProgressBar()
	if !strings.Contains(bar, "100.0%") || !strings.Contains(bar, "in 1.5s") {
		t.Errorf("done bar = %q", bar)
	}
}

func TestChartModel_View(t *testing.T) {
	t.Parallel()
	c := NewChartModel(testAlgos)
	c.SetSize(60, 20)
	c.AddRow(testRow(16, 2*time.Millisecond, 4*time.Millisecond, time.Millisecond))
	c.Select(2)

	view := c.View()
	for _, s := range []string{"Relative Speed", "schoolbook", "▸ karatsuba", "100.0%", "25.0%"} {
		if !strings.Contains(view, s) {
			t.Errorf("view does not contain %q", s)
		}
	}
}

package tui

import (
	"strings"
	"testing"
)

func TestFooterModel_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*FooterModel)
		want  string
	}{
		{"running", func(*FooterModel) {}, "Running"},
		{"paused", func(f *FooterModel) { f.SetPaused(true) }, "Paused"},
		{"done", func(f *FooterModel) { f.SetDone(true) }, "Done"},
		{"error wins", func(f *FooterModel) { f.SetDone(true); f.SetError(true) }, "Error"},
		{"reset", func(f *FooterModel) { f.SetError(true); f.Reset() }, "Running"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFooterModel(DefaultKeyMap())
			f.SetWidth(160)
			tt.setup(&f)
			if view := f.View(); !strings.Contains(view, tt.want) {
				t.Errorf("footer %q does not contain %q", view, tt.want)
			}
		})
	}
}

func TestFooterModel_SysStats(t *testing.T) {
	t.Parallel()
	f := NewFooterModel(DefaultKeyMap())
	f.SetWidth(160)

	f.UpdateSysStats(25, 60)
	f.UpdateSysStats(30, 62)

	if f.cpuHistory.Len() != 2 || f.memHistory.Len() != 2 {
		t.Fatalf("samples: cpu %d mem %d", f.cpuHistory.Len(), f.memHistory.Len())
	}
	view := f.View()
	for _, s := range []string{"CPU", "30.0%", "MEM", "62.0%", "quit", "pause", "restart"} {
		if !strings.Contains(view, s) {
			t.Errorf("footer does not contain %q", s)
		}
	}

	f.Reset()
	if f.cpuHistory.Len() != 2 {
		t.Error("Reset dropped the system history")
	}
}

func TestFooterModel_HistoryBounded(t *testing.T) {
	t.Parallel()
	f := NewFooterModel(DefaultKeyMap())
	for i := range 3 * footerSparkWidth {
		f.UpdateSysStats(float64(i), float64(i))
	}
	if f.cpuHistory.Len() != footerSparkWidth {
		t.Errorf("cpu history len = %d, want %d", f.cpuHistory.Len(), footerSparkWidth)
	}
}

package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState tracks the completion fraction of several concurrent tasks,
// such as the algorithm variants of a comparison run.
type ProgressState struct {
	mu             sync.Mutex
	progresses     []float64
	numCalculators int
}

// NewProgressState returns a state for n tasks, all at zero.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{progresses: make([]float64, n), numCalculators: n}
}

// Update records the progress of task i. Out-of-range indices are ignored
// and values are clamped to [0, 1].
func (p *ProgressState) Update(i int, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.progresses) {
		return
	}
	p.progresses[i] = min(max(v, 0), 1)
}

// CalculateAverage returns the mean progress over all tasks.
func (p *ProgressState) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.averageLocked()
}

func (p *ProgressState) averageLocked() float64 {
	if p.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numCalculators)
}

// maxETA caps estimates produced from very slow progress rates.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with a smoothed progress rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA returns a tracker for n tasks starting now.
func NewProgressWithETA(n int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{ProgressState: NewProgressState(n), startTime: now, lastUpdate: now}
}

// UpdateWithETA records progress for task i and returns the overall
// progress and the current estimate of the remaining time.
func (p *ProgressWithETA) UpdateWithETA(i int, v float64) (float64, time.Duration) {
	p.Update(i, v)
	avg := p.CalculateAverage()
	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0.05 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = 0.7*p.progressRate + 0.3*rate
		}
		p.lastUpdate, p.lastProgress = now, avg
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 when no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	return min(eta, maxETA)
}

// ProgressBar renders a bar of length cells for progress in [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

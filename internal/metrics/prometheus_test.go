package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, OutcomeOK},
		{"deadline", context.DeadlineExceeded, OutcomeTimeout},
		{"wrapped deadline", fmt.Errorf("mul: %w", context.DeadlineExceeded), OutcomeTimeout},
		{"canceled", context.Canceled, OutcomeCanceled},
		{"other", errors.New("boom"), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestCollector_Observe(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Observe("mul", 10, time.Millisecond, nil)
	c.Observe("mul", 20, time.Millisecond, nil)
	c.Observe("div", 5, time.Microsecond, errors.New("division by zero"))

	body := scrape(t, c)
	for _, want := range []string{
		`eintcalc_operations_total{op="mul",outcome="ok"} 2`,
		`eintcalc_operations_total{op="div",outcome="error"} 1`,
		`eintcalc_operation_duration_seconds_count{op="mul"} 2`,
		`eintcalc_operand_words_sum{op="mul"} 30`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestCollector_ActiveRequests(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.IncActive()
	c.IncActive()
	c.DecActive()
	if body := scrape(t, c); !strings.Contains(body, "eintcalc_active_requests 1") {
		t.Error("active_requests should be 1")
	}
}

func TestCollector_Handler(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Observe("add", 1, time.Microsecond, nil)
	c.ObserveRequest(http.MethodPost, http.StatusOK)

	body := scrape(t, c)
	for _, want := range []string{
		`eintcalc_operations_total{op="add",outcome="ok"} 1`,
		`eintcalc_requests_total{code="200",method="POST"} 1`,
		"eintcalc_operand_words_bucket",
		"eintcalc_heap_alloc_bytes",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

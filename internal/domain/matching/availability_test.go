package matching

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestUtilization_FullOverlapSingleAssignment(t *testing.T) {
	target := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 3, 1)}
	asgns := []Assignment{
		{Window: Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 3, 1)}},
	}

	pct, active := Utilization(target, asgns, DefaultConfig())
	if pct != 33 {
		t.Fatalf("expected 33, got %d", pct)
	}
	if active != 1 {
		t.Fatalf("expected 1 active, got %d", active)
	}
}

func TestUtilization_NoOverlap(t *testing.T) {
	target := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}
	asgns := []Assignment{
		{Window: Window{Start: datePtr(2026, 3, 1), End: datePtr(2026, 4, 1)}},
	}

	pct, active := Utilization(target, asgns, DefaultConfig())
	if pct != 0 {
		t.Fatalf("expected 0, got %d", pct)
	}
	if active != 0 {
		t.Fatalf("expected 0 active, got %d", active)
	}
}

func TestUtilization_PartialOverlap(t *testing.T) {
	// Target is 100 days; assignment overlaps the first 50.
	target := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 4, 11)}
	asgns := []Assignment{
		{Window: Window{Start: datePtr(2025, 12, 1), End: datePtr(2026, 2, 20)}},
	}

	pct, active := Utilization(target, asgns, DefaultConfig())
	// 50/100 * 15/45 = 0.1667 -> 17
	if pct != 17 {
		t.Fatalf("expected 17, got %d", pct)
	}
	if active != 1 {
		t.Fatalf("expected 1 active, got %d", active)
	}
}

func TestUtilization_CapsAtHundred(t *testing.T) {
	target := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}
	full := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}

	asgns := make([]Assignment, 0, 4)
	for i := 0; i < 4; i++ {
		asgns = append(asgns, Assignment{Window: full})
	}

	pct, active := Utilization(target, asgns, DefaultConfig())
	if pct != 100 {
		t.Fatalf("expected cap at 100, got %d", pct)
	}
	if active != 4 {
		t.Fatalf("expected 4 active, got %d", active)
	}
}

func TestUtilization_FallbackWhenTargetUndated(t *testing.T) {
	asgns := []Assignment{
		{Window: Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}},
		{Window: Window{}},
	}

	pct, active := Utilization(Window{}, asgns, DefaultConfig())
	if pct != 66 {
		t.Fatalf("expected 66, got %d", pct)
	}
	if active != 2 {
		t.Fatalf("expected raw count 2, got %d", active)
	}
}

func TestUtilization_FallbackCapsAtHundred(t *testing.T) {
	asgns := make([]Assignment, 5)

	pct, active := Utilization(Window{}, asgns, DefaultConfig())
	if pct != 100 {
		t.Fatalf("expected 100, got %d", pct)
	}
	if active != 5 {
		t.Fatalf("expected 5, got %d", active)
	}
}

func TestUtilization_ZeroDurationTargetUsesFallback(t *testing.T) {
	same := datePtr(2026, 1, 1)
	target := Window{Start: same, End: same}
	asgns := []Assignment{{Window: Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}}}

	pct, active := Utilization(target, asgns, DefaultConfig())
	if pct != 33 {
		t.Fatalf("expected fallback 33, got %d", pct)
	}
	if active != 1 {
		t.Fatalf("expected 1, got %d", active)
	}
}

func TestUtilization_UndatedAssignmentSkippedInDatedPath(t *testing.T) {
	target := Window{Start: datePtr(2026, 1, 1), End: datePtr(2026, 2, 1)}
	asgns := []Assignment{
		{Window: Window{Start: datePtr(2026, 1, 1), End: nil}},
	}

	pct, active := Utilization(target, asgns, DefaultConfig())
	if pct != 0 {
		t.Fatalf("expected 0, got %d", pct)
	}
	if active != 0 {
		t.Fatalf("expected 0 active, got %d", active)
	}
}

package util

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC), "2026-03-02"},
		{"monday itself", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "2026-03-02"},
		{"sunday maps to previous monday", time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), "2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateKey(StartOfWeek(tt.in)); got != tt.want {
				t.Fatalf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 calendar day, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestIsWithinDateRange(t *testing.T) {
	if !IsWithinDateRange("2026-03-05", "", "") {
		t.Fatalf("empty bounds should not filter")
	}
	if !IsWithinDateRange("2026-03-05", "2026-03-01", "2026-03-05") {
		t.Fatalf("inclusive bound should match")
	}
	if IsWithinDateRange("2026-03-06", "", "2026-03-05") {
		t.Fatalf("date past upper bound should not match")
	}
	if IsWithinDateRange("not-a-date", "2026-03-01", "") {
		t.Fatalf("malformed key should not match bounded range")
	}
}

func TestDetectChanges(t *testing.T) {
	local := map[string]string{
		"tasks.json":         "2026-03-05T10:00:00Z",
		"taskHistory.json":   "2026-03-05T10:00:00Z",
		"availableTags.json": "2026-03-05T09:00:00Z",
	}
	remote := map[string]string{
		"tasks.json":       "2026-03-05T09:00:00Z",
		"taskHistory.json": "2026-03-05T10:00:00Z",
		"tagColors.json":   "2026-03-05T08:00:00Z",
	}

	push := DetectChanges(local, remote, "local")
	pushSet := make(map[string]bool)
	for _, f := range push {
		pushSet[f] = true
	}
	if !pushSet["tasks.json"] || !pushSet["availableTags.json"] {
		t.Fatalf("expected newer and local-only files in push set, got %v", push)
	}
	if pushSet["taskHistory.json"] || pushSet["tagColors.json"] {
		t.Fatalf("unchanged or remote-only files must not be pushed, got %v", push)
	}

	pull := DetectChanges(local, remote, "s3")
	if len(pull) != 1 || pull[0] != "tagColors.json" {
		t.Fatalf("expected only remote-only file in pull set, got %v", pull)
	}
}

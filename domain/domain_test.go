package domain

import (
	"math"
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2025-10-28", "2025-10-28", true},
		{" 2025-10-28 ", "2025-10-28", true},
		{"28/10/2025", "2025-10-28", true},
		{"2025-10-28T23:30:00Z", "2025-10-28", true},
		{"", "", false},
		{"2025-13-40", "", false},
		{"tomorrow", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDueDate(tt.input, time.UTC)
			if ok != tt.ok {
				t.Fatalf("ParseDueDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDueDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestTaskFilterMatch(t *testing.T) {
	standalone := Task{ID: "a", Subject: "", Completed: false}
	math := Task{ID: "b", Subject: "Cálculo", Completed: true}
	grouped := Task{ID: "c", Subject: "Cálculo", GroupID: "g1"}

	tests := []struct {
		name   string
		filter TaskFilter
		task   Task
		want   bool
	}{
		{"zero filter accepts", TaskFilter{}, math, true},
		{"all accepts", TaskFilter{Subject: FilterAll, Group: FilterAll, Status: FilterAll}, grouped, true},
		{"subject match", TaskFilter{Subject: "Cálculo"}, math, true},
		{"subject mismatch", TaskFilter{Subject: "Física"}, math, false},
		{"no subject selects standalone", TaskFilter{Subject: NoSubject}, standalone, true},
		{"no subject rejects subject", TaskFilter{Subject: NoSubject}, math, false},
		{"pending rejects completed", TaskFilter{Status: StatusPending}, math, false},
		{"completed accepts completed", TaskFilter{Status: StatusCompleted}, math, true},
		{"no group selects standalone", TaskFilter{Group: NoGroup}, standalone, true},
		{"no group rejects grouped", TaskFilter{Group: NoGroup}, grouped, false},
		{"group id match", TaskFilter{Group: "g1"}, grouped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.task); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{ID: "t1", Title: "Old", Points: 50}
	title := "New"
	points := 80
	TaskPatch{Title: &title, Points: &points}.Apply(&task)

	if task.Title != "New" || task.Points != 80 {
		t.Errorf("unexpected task after patch: %+v", task)
	}
	if task.ID != "t1" {
		t.Errorf("ID changed to %q", task.ID)
	}
}

func TestGroupMatches(t *testing.T) {
	g := Group{ID: "g1", Name: "Proyecto Final"}
	if !g.Matches("proyecto final") {
		t.Error("expected case-insensitive name match")
	}
	if !g.Matches("g1") {
		t.Error("expected id match")
	}
	if g.Matches("G1") {
		t.Error("id match must be exact")
	}
}

func TestIsDomainError(t *testing.T) {
	wrapped := WrapError(ErrCodeInternal, "outer", ErrGroupNotFound)
	if !IsDomainError(ErrGroupNotFound, ErrCodeNotFound) {
		t.Error("expected NOT_FOUND")
	}
	if !IsDomainError(wrapped, ErrCodeInternal) {
		t.Error("expected outermost code to win")
	}
	if IsDomainError(nil, ErrCodeInternal) {
		t.Error("nil is not a domain error")
	}
}

func TestAddPoints(t *testing.T) {
	tests := []struct {
		points, delta, want int
	}{
		{10, 5, 15},
		{10, -20, 0},
		{100, math.MaxInt, math.MaxInt},
		{math.MaxInt, 1, math.MaxInt},
		{0, math.MinInt, 0},
	}
	for _, tt := range tests {
		if got := AddPoints(tt.points, tt.delta); got != tt.want {
			t.Errorf("AddPoints(%d, %d) = %d, want %d", tt.points, tt.delta, got, tt.want)
		}
	}
}

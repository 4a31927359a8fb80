package review

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/studycore/internal/errs"
)

func TestDefaultLadder_Values(t *testing.T) {
	expected := []int{1, 3, 7, 14}
	if len(DefaultLadder) != len(expected) {
		t.Fatalf("DefaultLadder has %d intervals, want %d", len(DefaultLadder), len(expected))
	}
	for i, v := range expected {
		if DefaultLadder[i] != v {
			t.Errorf("DefaultLadder[%d] = %d, want %d", i, DefaultLadder[i], v)
		}
	}
}

func TestIntervalDays_Clamped(t *testing.T) {
	tests := []struct {
		index    int
		expected int
	}{
		{-1, 1},
		{0, 1},
		{1, 3},
		{2, 7},
		{3, 14},
		{4, 14},
		{50, 14},
	}
	for _, tt := range tests {
		if got := DefaultLadder.IntervalDays(tt.index); got != tt.expected {
			t.Errorf("IntervalDays(%d) = %d, want %d", tt.index, got, tt.expected)
		}
	}
}

func TestLadderValidate(t *testing.T) {
	tests := []struct {
		name    string
		ladder  Ladder
		wantErr bool
	}{
		{"default", DefaultLadder, false},
		{"single", Ladder{2}, false},
		{"flat", Ladder{1, 1, 2}, false},
		{"empty", Ladder{}, true},
		{"nil", nil, true},
		{"zero", Ladder{0, 3}, true},
		{"shrinking", Ladder{1, 7, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ladder.Validate()
			if tt.wantErr && !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected err: %v", err)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if (Schedule{DueAt: now.Add(time.Hour)}).IsDue(now) {
		t.Error("expected not due before DueAt")
	}
	if !(Schedule{DueAt: now}).IsDue(now) {
		t.Error("expected due at DueAt")
	}
	if !(Schedule{DueAt: now.AddDate(0, 0, -3)}).IsDue(now) {
		t.Error("expected overdue schedule to be due")
	}
}

func TestOverdueDays(t *testing.T) {
	due := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Schedule{DueAt: due}
	if got := s.OverdueDays(due.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays before due = %f, want 0", got)
	}
	if got := s.OverdueDays(due.Add(3 * 24 * time.Hour)); got != 3 {
		t.Errorf("OverdueDays = %f, want 3", got)
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := (Schedule{DueAt: now.Add(36 * time.Hour)}).DaysUntilDue(now); got != 2 {
		t.Errorf("DaysUntilDue = %d, want 2", got)
	}
	if got := (Schedule{DueAt: now}).DaysUntilDue(now); got != 0 {
		t.Errorf("DaysUntilDue when due = %d, want 0", got)
	}
}

func TestParseOutcome(t *testing.T) {
	if o, err := ParseOutcome("PASS"); err != nil || o != OutcomePass {
		t.Errorf("ParseOutcome(PASS) = %q, %v", o, err)
	}
	if o, err := ParseOutcome("fail"); err != nil || o != OutcomeFail {
		t.Errorf("ParseOutcome(fail) = %q, %v", o, err)
	}
	if _, err := ParseOutcome("skip"); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

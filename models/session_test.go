package models

import (
	"testing"
	"time"
)

func TestNormalizeTimesMovesClockOntoScheduledDay(t *testing.T) {
	start := time.Date(2020, 1, 1, 18, 30, 0, 0, time.UTC)
	end := time.Date(1999, 12, 31, 21, 15, 0, 0, time.UTC)
	s := GameSession{
		ScheduledDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ActualStartTime: &start,
		ActualEndTime:   &end,
	}

	s.NormalizeTimes()

	want := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)
	if !s.ActualStartTime.Equal(want) {
		t.Fatalf("expected start %s, got %s", want, s.ActualStartTime)
	}
	wantEnd := time.Date(2026, 5, 1, 21, 15, 0, 0, time.UTC)
	if !s.ActualEndTime.Equal(wantEnd) {
		t.Fatalf("expected end %s, got %s", wantEnd, s.ActualEndTime)
	}
	if !start.Equal(time.Date(2020, 1, 1, 18, 30, 0, 0, time.UTC)) {
		t.Fatal("normalization must not mutate the caller's time value")
	}
}

func TestNormalizeTimesLeavesMissingTimesNil(t *testing.T) {
	s := GameSession{ScheduledDate: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	s.NormalizeTimes()
	if s.ActualStartTime != nil || s.ActualEndTime != nil {
		t.Fatal("expected nil actual times to stay nil")
	}
}

func TestSessionStatusValid(t *testing.T) {
	for _, name := range SessionStatusNames() {
		if !SessionStatus(name).Valid() {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	if SessionStatus("Planned").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

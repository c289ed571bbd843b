package recurrence

import (
	"testing"
	"time"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

func weekly(day string) *lazyspender.PlannedPayment {
	return &lazyspender.PlannedPayment{
		RecurrenceType:  lazyspender.RecurrenceWeekly,
		RecurrenceValue: day,
	}
}

func monthly(day string) *lazyspender.PlannedPayment {
	return &lazyspender.PlannedPayment{
		RecurrenceType:  lazyspender.RecurrenceMonthly,
		RecurrenceValue: day,
	}
}

func TestNextDueDateWeekly(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		day     string
		want    time.Time
	}{
		{
			name:    "next friday from monday",
			current: time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC), // Monday
			day:     "FRIDAY",
			want:    time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "same weekday advances a full week",
			current: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), // Monday
			day:     "MONDAY",
			want:    time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wraps over the weekend",
			current: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC), // Saturday
			day:     "TUESDAY",
			want:    time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(weekly(tt.day), tt.current)
			if err != nil {
				t.Fatalf("NextDueDate error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextDueDateMonthly(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		day     string
		want    time.Time
	}{
		{
			name:    "regular day",
			current: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			day:     "15",
			want:    time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "day 31 clamped to 30-day month",
			current: time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
			day:     "31",
			want:    time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "day 31 clamped to february",
			current: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			day:     "31",
			want:    time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(monthly(tt.day), tt.current)
			if err != nil {
				t.Fatalf("NextDueDate error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextDueDateInvalidValues(t *testing.T) {
	now := time.Now()

	if _, err := NextDueDate(weekly("SOMEDAY"), now); err == nil {
		t.Error("expected error for invalid weekday")
	}
	if _, err := NextDueDate(monthly("32"), now); err == nil {
		t.Error("expected error for invalid day of month")
	}
	if _, err := NextDueDate(&lazyspender.PlannedPayment{RecurrenceType: "DAILY"}, now); err == nil {
		t.Error("expected error for unknown recurrence type")
	}
}

func TestShouldComplete(t *testing.T) {
	occurrence := &lazyspender.PlannedPayment{
		EndType:  lazyspender.EndOccurrence,
		EndValue: "3",
	}

	for count, want := range map[int]bool{2: false, 3: true, 4: true} {
		got, err := ShouldComplete(occurrence, count)
		if err != nil {
			t.Fatalf("ShouldComplete error: %v", err)
		}
		if got != want {
			t.Errorf("ShouldComplete(count=%d) = %v, want %v", count, got, want)
		}
	}

	byDate := &lazyspender.PlannedPayment{
		EndType:     lazyspender.EndDate,
		EndValue:    "2025-12-31T00:00:00Z",
		NextDueDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	if got, err := ShouldComplete(byDate, 10); err != nil || !got {
		t.Errorf("ShouldComplete(past end date) = (%v, %v), want (true, nil)", got, err)
	}

	byDate.NextDueDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if got, err := ShouldComplete(byDate, 10); err != nil || got {
		t.Errorf("ShouldComplete(before end date) = (%v, %v), want (false, nil)", got, err)
	}

	never := &lazyspender.PlannedPayment{EndType: lazyspender.EndNever}
	if got, err := ShouldComplete(never, 1000); err != nil || got {
		t.Errorf("ShouldComplete(NEVER) = (%v, %v), want (false, nil)", got, err)
	}
}

// Package recurrence computes due dates and completion for planned
// payments.
package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var weekdays = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// NextDueDate computes the due date that follows current for a planned
// payment. All dates are treated as UTC and normalized to start of day.
func NextDueDate(payment *lazyspender.PlannedPayment, current time.Time) (time.Time, error) {
	switch payment.RecurrenceType {
	case lazyspender.RecurrenceWeekly:
		return nextWeekly(current, payment.RecurrenceValue)
	case lazyspender.RecurrenceMonthly:
		return nextMonthly(current, payment.RecurrenceValue)
	default:
		return time.Time{}, fmt.Errorf("unknown recurrence type %q", payment.RecurrenceType)
	}
}

// nextWeekly returns the next occurrence of the target weekday strictly
// after the current date.
func nextWeekly(current time.Time, dayOfWeek string) (time.Time, error) {
	target, ok := weekdays[strings.ToUpper(dayOfWeek)]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid day of week %q", dayOfWeek)
	}

	day := startOfDay(current)
	days := (int(target) - int(day.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return day.AddDate(0, 0, days), nil
}

// nextMonthly returns the target day of the next month, clamped to the
// month's length (day 31 in a 30-day month becomes day 30).
func nextMonthly(current time.Time, dayOfMonth string) (time.Time, error) {
	target, err := strconv.Atoi(dayOfMonth)
	if err != nil || target < 1 || target > 31 {
		return time.Time{}, fmt.Errorf("invalid day of month %q", dayOfMonth)
	}

	day := startOfDay(current)
	firstOfNext := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if target > lastDay {
		target = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), target, 0, 0, 0, 0, time.UTC), nil
}

// ShouldComplete reports whether a planned payment has reached its end
// condition. completedCount is the number of transactions already posted
// from the payment.
func ShouldComplete(payment *lazyspender.PlannedPayment, completedCount int) (bool, error) {
	switch payment.EndType {
	case lazyspender.EndOccurrence:
		max, err := strconv.Atoi(payment.EndValue)
		if err != nil {
			return false, fmt.Errorf("invalid occurrence count %q", payment.EndValue)
		}
		return completedCount >= max, nil
	case lazyspender.EndDate:
		endDate, err := time.Parse(time.RFC3339, payment.EndValue)
		if err != nil {
			return false, fmt.Errorf("invalid end date %q", payment.EndValue)
		}
		return !payment.NextDueDate.IsZero() && payment.NextDueDate.After(endDate), nil
	default:
		// NEVER type never completes automatically.
		return false, nil
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

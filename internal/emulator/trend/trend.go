// Package trend computes balance-trend aggregations over transaction
// history.
package trend

import (
	"math"
	"time"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// Calculate aggregates an owner's transaction history into a balance
// trend. history must be sorted by date ascending and contain the
// owner's full history; the window and account filter are applied here.
// An empty accounts list matches every account.
func Calculate(history []lazyspender.Transaction, accounts []string, period lazyspender.TrendPeriod, now time.Time) *lazyspender.BalanceTrendResponse {
	now = now.UTC()
	startDate := windowStart(period, now)

	matches := accountFilter(accounts)

	var txns []lazyspender.Transaction
	for _, txn := range history {
		if txn.Date.Before(startDate) || txn.Date.After(now) {
			continue
		}
		if matches(txn.Account) {
			txns = append(txns, txn)
		}
	}

	// FROM_START charts the whole history, so the window begins at the
	// first transaction and nothing precedes it.
	var openingBalance float64
	if period == lazyspender.PeriodFromStart {
		if len(txns) > 0 {
			startDate = txns[0].Date
		}
	} else {
		for _, txn := range history {
			if !txn.Date.Before(startDate) {
				break
			}
			if matches(txn.Account) {
				openingBalance += signedAmount(txn)
			}
		}
	}

	dataPoints := dataPoints(txns, startDate, now, period, openingBalance)

	totalBalance := 0.0
	if len(dataPoints) > 0 {
		totalBalance = dataPoints[len(dataPoints)-1].Balance
	}

	currency := "PHP"
	if len(txns) > 0 {
		currency = txns[0].Currency
	}

	return &lazyspender.BalanceTrendResponse{
		TotalBalance: totalBalance,
		Currency:     currency,
		DataPoints:   dataPoints,
		YAxisConfig:  yAxisConfig(dataPoints),
	}
}

func accountFilter(accounts []string) func(string) bool {
	if len(accounts) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		set[account] = struct{}{}
	}
	return func(account string) bool {
		_, ok := set[account]
		return ok
	}
}

func signedAmount(txn lazyspender.Transaction) float64 {
	if txn.Type == lazyspender.TypeIncome {
		return txn.Amount
	}
	return -txn.Amount
}

func windowStart(period lazyspender.TrendPeriod, now time.Time) time.Time {
	switch period {
	case lazyspender.PeriodLast12Weeks:
		return startOfDay(now.AddDate(0, 0, -12*7))
	case lazyspender.PeriodLastYear:
		return startOfDay(now.AddDate(-1, 0, 0))
	default:
		return time.Unix(0, 0).UTC()
	}
}

// dataPoints walks the window period by period, accumulating the running
// balance. Interior periods with no activity are skipped; the first and
// last periods always produce a point so the chart spans the window.
func dataPoints(txns []lazyspender.Transaction, startDate, endDate time.Time, period lazyspender.TrendPeriod, openingBalance float64) []lazyspender.BalanceTrendDataPoint {
	if len(txns) == 0 {
		return []lazyspender.BalanceTrendDataPoint{{
			Label:     formatLabel(endDate, period),
			Timestamp: endDate,
			Balance:   openingBalance,
		}}
	}

	var points []lazyspender.BalanceTrendDataPoint
	balance := openingBalance
	initialStart := periodStart(startDate, period)
	current := initialStart
	index := 0

	for current.Before(endDate) {
		next := nextPeriod(current, period)

		var income, expense float64
		for index < len(txns) {
			date := txns[index].Date
			if date.Before(current) {
				index++
				continue
			}
			if !date.Before(next) {
				break
			}

			amount := txns[index].Amount
			if txns[index].Type == lazyspender.TypeIncome {
				balance += amount
				income += amount
			} else {
				balance -= amount
				expense += amount
			}
			index++
		}

		if income > 0 || expense > 0 || current.Equal(initialStart) || !next.Before(endDate) {
			points = append(points, lazyspender.BalanceTrendDataPoint{
				Label:     formatLabel(current, period),
				Timestamp: current,
				Balance:   balance,
				Income:    income,
				Expense:   expense,
			})
		}

		current = next
	}

	return points
}

func periodStart(date time.Time, period lazyspender.TrendPeriod) time.Time {
	day := startOfDay(date)
	if period == lazyspender.PeriodLast12Weeks {
		// Align to the Monday of the week.
		back := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -back)
	}
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func nextPeriod(current time.Time, period lazyspender.TrendPeriod) time.Time {
	if period == lazyspender.PeriodLast12Weeks {
		return current.AddDate(0, 0, 7)
	}
	return current.AddDate(0, 1, 0)
}

func formatLabel(date time.Time, period lazyspender.TrendPeriod) string {
	if period == lazyspender.PeriodLast12Weeks {
		return date.Format("Jan 2")
	}
	return date.Format("Jan 2006")
}

func yAxisConfig(points []lazyspender.BalanceTrendDataPoint) lazyspender.YAxisConfig {
	if len(points) == 0 {
		return lazyspender.YAxisConfig{MaxValue: 100000, Interval: 20000}
	}

	maxBalance := 0.0
	for _, point := range points {
		if point.Balance > maxBalance {
			maxBalance = point.Balance
		}
	}

	// Round up to the next hundred thousand, with a floor for flat charts.
	maxValue := math.Ceil(maxBalance/100000) * 100000
	if maxValue < 100000 {
		maxValue = 100000
	}

	return lazyspender.YAxisConfig{
		MaxValue: maxValue,
		Interval: maxValue / 5,
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

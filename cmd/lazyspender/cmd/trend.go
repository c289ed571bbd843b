package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var trendPeriod string

// trendCmd represents the trend command.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the balance trend",
	Long: `Show the cumulative balance trend over a period.

Periods:
  LAST_12_WEEKS  weekly buckets over the last twelve weeks
  LAST_YEAR      monthly buckets over the last year
  FROM_START     monthly buckets from the first transaction

Example:
  lazyspender trend
  lazyspender trend --period FROM_START`,
	Run: runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendPeriod, "period", "LAST_12_WEEKS", "Trend period")
}

func runTrend(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner", "accounts")

	var period lazyspender.TrendPeriod
	switch p := lazyspender.TrendPeriod(strings.ToUpper(trendPeriod)); p {
	case lazyspender.PeriodLast12Weeks, lazyspender.PeriodLastYear, lazyspender.PeriodFromStart:
		period = p
	default:
		exitOnError(fmt.Errorf("invalid period %q", trendPeriod), "invalid arguments")
	}

	_, trends := newCaches(cfg)
	resp, err := trends.Get(lazyspender.BalanceTrendParams{
		Owner:    cfg.Owner,
		Accounts: cfg.Accounts,
		Period:   period,
	})
	exitOnError(err, "failed to fetch balance trend")

	fmt.Printf("Balance trend (%s, accounts: %s)\n\n", period, strings.Join(cfg.Accounts, ", "))
	fmt.Printf("%-10s %14s %12s %12s\n", "PERIOD", "BALANCE", "INCOME", "EXPENSE")
	for _, point := range resp.DataPoints {
		fmt.Printf("%-10s %14.2f %12.2f %12.2f\n",
			point.Label, point.Balance, point.Income, point.Expense)
	}
	fmt.Printf("\nTotal balance: %.2f %s\n", resp.TotalBalance, resp.Currency)
}

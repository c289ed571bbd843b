package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display local ledger statistics",
	Long: `Display statistics about the local SQLite ledger snapshot.

Shows:
- Total number of exported transactions
- Total income and expense sums
- Last export timestamp

Example:
  lazyspender stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig("owner", "dbPath")

	conn, err := db.Open(cfg.DBPath)
	exitOnError(err, "failed to open ledger database")
	defer conn.Close()

	ledger := db.NewLedger(conn)
	stats, err := ledger.GetStats(cfg.Owner)
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Owner:              %s\n", cfg.Owner)
	fmt.Printf("Total transactions: %d\n", stats.TotalTransactions)
	fmt.Printf("Total income:       %.2f %s\n", stats.TotalIncome, cfg.Currency)
	fmt.Printf("Total expense:      %.2f %s\n", stats.TotalExpense, cfg.Currency)

	if stats.LastExport.Valid {
		fmt.Printf("Last export:        %s\n", stats.LastExport.String)
	} else {
		fmt.Printf("Last export:        (never)\n")
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/cache"
	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var (
	recordsPages int
	recordsSize  int
)

// recordsCmd represents the records command.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List transactions, most recent first",
	Long: `List transactions from the LazySpender server.

Pages are fetched through the transaction cache, so repeated pages
within one run are served locally.

Example:
  lazyspender records
  lazyspender records --pages 3 --size 10`,
	Run: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&recordsPages, "pages", 1, "Number of pages to fetch")
	recordsCmd.Flags().IntVar(&recordsSize, "size", 0, "Page size (default from configuration)")
}

func runRecords(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")

	size := recordsSize
	if size <= 0 {
		size = cfg.PageSize
	}

	store, _ := newCaches(cfg)
	identity := cache.Identity{PageSize: size}

	slog.Debug("Fetching first page", "size", size)
	exitOnError(store.Ensure(identity), "failed to fetch transactions")

	for page := 1; page < recordsPages; page++ {
		loaded, err := store.LoadNext(identity)
		exitOnError(err, "failed to fetch next page")
		if !loaded {
			break
		}
	}

	txns := store.Flatten(identity)
	if len(txns) == 0 {
		fmt.Println("No transactions found")
		return
	}

	fmt.Printf("%-12s %-12s %-14s %12s  %-20s %s\n",
		"DATE", "ACCOUNT", "CATEGORY", "AMOUNT", "NOTE", "ID")
	for _, txn := range txns {
		amount := txn.Amount
		if txn.Type == lazyspender.TypeExpense {
			amount = -amount
		}
		fmt.Printf("%-12s %-12s %-14s %12.2f  %-20s %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Account,
			txn.Category,
			amount,
			txn.Note,
			txn.ID,
		)
	}

	fmt.Printf("\nShowing %d of %d transactions", len(txns), store.TotalElements(identity))
	if store.HasNext(identity) {
		fmt.Print(" (more available, use --pages)")
	}
	fmt.Println()
}

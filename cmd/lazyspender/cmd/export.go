package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/db"
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all transactions to the local SQLite ledger",
	Long: `Export every transaction from the LazySpender server into a local
SQLite snapshot for offline queries.

The snapshot is replaced wholesale on each export and the run is
recorded in the export history.

Example:
  lazyspender export`,
	Run: runExport,
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner", "dbPath")

	client := newClient(cfg)

	slog.Info("Fetching transactions", "owner", cfg.Owner)
	txns, err := client.FetchAllTransactions(cfg.PageSize)
	exitOnError(err, "failed to fetch transactions")
	slog.Info("Fetched transactions", "count", len(txns))

	conn, err := db.Open(cfg.DBPath)
	exitOnError(err, "failed to open ledger database")
	defer conn.Close()

	ledger := db.NewLedger(conn)
	exitOnError(ledger.ReplaceSnapshot(cfg.Owner, txns), "failed to write snapshot")
	exitOnError(ledger.SetMetadata("api_url", cfg.APIURL), "failed to record metadata")

	slog.Info("Export completed", "count", len(txns), "db_path", cfg.DBPath)
	fmt.Printf("Exported %d transactions to %s\n", len(txns), cfg.DBPath)
}

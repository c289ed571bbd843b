package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete <transaction-id>",
	Short: "Delete a transaction",
	Long: `Delete a transaction from the LazySpender server.

The record is removed from the local cache immediately and restored if
the server rejects the deletion.

Example:
  lazyspender delete 6f1e...`,
	Args: cobra.ExactArgs(1),
	Run:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")
	id := args[0]

	store, _ := newCaches(cfg)
	exitOnError(store.Delete(id), "failed to delete transaction")

	slog.Info("Transaction deleted", "id", id)
	fmt.Printf("Deleted %s\n", id)
}

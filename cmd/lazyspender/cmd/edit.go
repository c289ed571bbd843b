package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var (
	editAccount  string
	editCategory string
	editAmount   float64
	editNote     string
	editDate     string
	editType     string
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:   "edit <transaction-id>",
	Short: "Edit an existing transaction",
	Long: `Edit fields of an existing transaction. Only the flags given are
changed; everything else keeps its current value.

Example:
  lazyspender edit 6f1e... --amount 300
  lazyspender edit 6f1e... --category Transport --note "bus fare"`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editAccount, "account", "", "Account name")
	editCmd.Flags().StringVar(&editCategory, "category", "", "Category")
	editCmd.Flags().Float64Var(&editAmount, "amount", 0, "Amount, always positive")
	editCmd.Flags().StringVar(&editNote, "note", "", "Free-form note")
	editCmd.Flags().StringVar(&editDate, "date", "", "Date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editType, "type", "", "Transaction type: INCOME or EXPENSE")
}

func runEdit(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")
	id := args[0]

	client := newClient(cfg)
	existing, err := client.GetTransaction(id)
	exitOnError(err, "failed to fetch transaction")

	req := lazyspender.CreateTransactionRequest{
		Owner:             existing.Owner,
		Account:           existing.Account,
		Category:          existing.Category,
		Amount:            existing.Amount,
		Note:              existing.Note,
		Date:              existing.Date,
		Currency:          existing.Currency,
		RefCurrencyAmount: existing.RefCurrencyAmount,
		PlannedPaymentID:  existing.PlannedPaymentID,
		Type:              existing.Type,
	}

	flags := cmd.Flags()
	if flags.Changed("account") {
		req.Account = editAccount
	}
	if flags.Changed("category") {
		req.Category = editCategory
	}
	if flags.Changed("amount") {
		if editAmount <= 0 {
			exitOnError(fmt.Errorf("amount must be positive, got %v", editAmount), "invalid transaction")
		}
		req.Amount = editAmount
		req.RefCurrencyAmount = editAmount
	}
	if flags.Changed("note") {
		req.Note = editNote
	}
	if flags.Changed("date") {
		date, err := parseCLIDate(editDate)
		exitOnError(err, "invalid transaction")
		req.Date = date
	}
	if flags.Changed("type") {
		txType := lazyspender.TransactionType(strings.ToUpper(editType))
		if txType != lazyspender.TypeIncome && txType != lazyspender.TypeExpense {
			exitOnError(fmt.Errorf("invalid type %q (want INCOME or EXPENSE)", editType), "invalid transaction")
		}
		req.Type = txType
	}

	store, _ := newCaches(cfg)
	txn, err := store.Update(id, req)
	exitOnError(err, "failed to update transaction")

	slog.Info("Transaction updated", "id", txn.ID)
	fmt.Printf("Updated %s: %s %s %.2f %s (%s)\n",
		txn.ID, txn.Date.Format("2006-01-02"), txn.Category, txn.Amount, txn.Currency, txn.Type)
}

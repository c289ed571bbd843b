package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var (
	addAccount  string
	addCategory string
	addAmount   float64
	addNote     string
	addDate     string
	addType     string
	addCurrency string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new transaction",
	Long: `Record a new transaction on the LazySpender server.

The new record is prepended to the local transaction cache so a
subsequent listing in the same run shows it immediately.

Example:
  lazyspender add --account Cash --category Food --amount 250 --note lunch --type EXPENSE
  lazyspender add --account Bank --category Salary --amount 50000 --type INCOME --date 2025-08-15`,
	Run: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addAccount, "account", "", "Account name (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (required)")
	addCmd.Flags().Float64Var(&addAmount, "amount", 0, "Amount, always positive (required)")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-form note")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addType, "type", "EXPENSE", "Transaction type: INCOME or EXPENSE")
	addCmd.Flags().StringVar(&addCurrency, "currency", "", "Currency (default from configuration)")

	addCmd.MarkFlagRequired("account")
	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("amount")
}

func runAdd(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")

	req, err := buildTransactionRequest(cfg.Owner, cfg.Currency)
	exitOnError(err, "invalid transaction")

	store, _ := newCaches(cfg)
	txn, err := store.Create(*req)
	exitOnError(err, "failed to create transaction")

	slog.Info("Transaction recorded", "id", txn.ID)
	fmt.Printf("Recorded %s %s %.2f %s (%s) as %s\n",
		txn.Date.Format("2006-01-02"), txn.Category, txn.Amount, txn.Currency, txn.Type, txn.ID)
}

// buildTransactionRequest assembles a request from the add/edit flags.
func buildTransactionRequest(owner, defaultCurrency string) (*lazyspender.CreateTransactionRequest, error) {
	date := time.Now().UTC()
	if addDate != "" {
		parsed, err := parseCLIDate(addDate)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	txType := lazyspender.TransactionType(strings.ToUpper(addType))
	if txType != lazyspender.TypeIncome && txType != lazyspender.TypeExpense {
		return nil, fmt.Errorf("invalid type %q (want INCOME or EXPENSE)", addType)
	}

	if addAmount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %v", addAmount)
	}

	currency := addCurrency
	if currency == "" {
		currency = defaultCurrency
	}

	return &lazyspender.CreateTransactionRequest{
		Owner:             owner,
		Account:           addAccount,
		Category:          addCategory,
		Amount:            addAmount,
		Note:              addNote,
		Date:              date,
		Currency:          currency,
		RefCurrencyAmount: addAmount,
		Type:              txType,
	}, nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

var plannedStatus string

// plannedCmd represents the planned command.
var plannedCmd = &cobra.Command{
	Use:   "planned",
	Short: "List planned payments",
	Long: `List planned (recurring) payments, ordered by next due date.

Example:
  lazyspender planned
  lazyspender planned --status ACTIVE
  lazyspender planned confirm 6f1e...`,
	Run: runPlanned,
}

// plannedConfirmCmd represents the planned confirm command.
var plannedConfirmCmd = &cobra.Command{
	Use:   "confirm <planned-payment-id>",
	Short: "Confirm a due planned payment",
	Long: `Confirm a planned payment: post a transaction for the current due
date and advance the payment to its next occurrence.`,
	Args: cobra.ExactArgs(1),
	Run:  runPlannedConfirm,
}

func init() {
	plannedCmd.Flags().StringVar(&plannedStatus, "status", "", "Filter by status (ACTIVE, PAUSED, COMPLETED, CANCELLED)")
	plannedCmd.AddCommand(plannedConfirmCmd)
}

func runPlanned(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")

	client := newClient(cfg)
	payments, err := client.ListPlannedPayments(cfg.Owner, lazyspender.PaymentStatus(strings.ToUpper(plannedStatus)))
	exitOnError(err, "failed to list planned payments")

	if len(payments) == 0 {
		fmt.Println("No planned payments found")
		return
	}

	fmt.Printf("%-12s %-20s %12s %-10s %-10s %s\n",
		"NEXT DUE", "DESCRIPTION", "AMOUNT", "REPEATS", "STATUS", "ID")
	for _, payment := range payments {
		fmt.Printf("%-12s %-20s %12.2f %-10s %-10s %s\n",
			payment.NextDueDate.Format("2006-01-02"),
			payment.Description,
			payment.Amount,
			payment.RecurrenceType,
			payment.Status,
			payment.ID,
		)
	}
}

func runPlannedConfirm(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")
	id := args[0]

	client := newClient(cfg)
	txn, err := client.ConfirmPlannedPayment(id)
	exitOnError(err, "failed to confirm planned payment")

	slog.Info("Planned payment confirmed", "id", id, "transaction_id", txn.ID)
	fmt.Printf("Posted %s %s %.2f %s as %s\n",
		txn.Date.Format("2006-01-02"), txn.Note, txn.Amount, txn.Currency, txn.ID)

	payment, err := client.GetPlannedPayment(id)
	if err == nil {
		if payment.Status == lazyspender.StatusCompleted {
			fmt.Println("Planned payment completed")
		} else {
			fmt.Printf("Next due: %s\n", payment.NextDueDate.Format("2006-01-02"))
		}
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// notesCmd represents the notes command.
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List distinct transaction notes",
	Long: `List the distinct notes used on past transactions, the same list
the mobile client offers as autocomplete suggestions.

Example:
  lazyspender notes`,
	Run: runNotes,
}

func init() {
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) {
	cfg := loadConfig("apiUrl", "owner")

	client := newClient(cfg)
	notes, err := client.DistinctNotes(cfg.Owner)
	exitOnError(err, "failed to list notes")

	if len(notes) == 0 {
		fmt.Println("No notes found")
		return
	}
	for _, note := range notes {
		fmt.Println(note)
	}
}

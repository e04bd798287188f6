package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/greenproof/internal/cli"
)

func ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show the credit balance and verified action history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to load ledger history: %w", err)
			}
			total, err := store.TotalCredits(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute balance: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render("Credit Ledger"))
			fmt.Printf("Balance: %s credits\n\n", cli.BoldStyle.Render(fmt.Sprintf("%d", total)))

			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No verified actions yet. Use 'greenproof verify' to earn credits."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tACTION\tCREDITS\tMATCHED")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					entry.Timestamp.Local().Format("2006-01-02 15:04"),
					entry.Category,
					entry.CreditsAwarded,
					strings.Join(entry.Verdict.MatchedLabels, ", "))
			}
			return w.Flush()
		},
	}
}

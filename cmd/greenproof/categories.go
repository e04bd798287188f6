package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/greenproof/internal/cli"
	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List action categories, credit values, and keywords",
		RunE: func(_ *cobra.Command, _ []string) error {
			tax, err := taxonomy.New()
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Action Categories"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tNAME\tCREDITS\tKEYWORDS")
			for _, category := range model.Categories() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					category,
					tax.DisplayName(category),
					tax.Credits(category),
					strings.Join(tax.Keywords(category), ", "))
			}
			return w.Flush()
		},
	}
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/report"
)

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print income/expense totals per company and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}

			summary, err := report.Build(cmd.Context(), st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transactions: %d  Income: %s  Expense: %s  Net: %s\n\n",
				summary.Count,
				summary.Income.StringFixed(2),
				summary.Expense.StringFixed(2),
				summary.Net.StringFixed(2))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMPANY\tCOUNT\tINCOME\tEXPENSE\tNET")
			for _, c := range summary.Companies {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					c.CompanyName, c.Count,
					c.Income.StringFixed(2), c.Expense.StringFixed(2), c.Net.StringFixed(2))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "CATEGORY\tCOUNT\tINCOME\tEXPENSE\tNET")
			for _, c := range summary.Categories {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					c.CategoryName, c.Count,
					c.Income.StringFixed(2), c.Expense.StringFixed(2), c.Net.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newRecommendCommand(opts *globalOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Rank plans by the monthly cost of a usage profile",
		Example: `  pricectl recommend -m "Claude Sonnet 4" -r 800 -d 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.calc.Recommend(cmd.Context(), flags.selection())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(w io.Writer) {
				table := newTable(w, "Plan", "Seats", "Overage", "Total ("+reply.Currency+")", "Per developer")
				for _, q := range reply.Quotes {
					table.Append([]string{
						q.Name,
						pricing.FormatAmount(q.Seats),
						pricing.FormatAmount(q.Overage),
						pricing.FormatAmount(q.Total),
						pricing.FormatAmount(q.PerDeveloper),
					})
				}
				table.Render()
				if reply.Best != "" {
					fmt.Fprintf(w, "cheapest: %s\n", reply.Best)
				}
			})
		},
	}
	flags.addFlags(cmd.Flags())
	return cmd
}

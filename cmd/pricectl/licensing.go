package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newLicensingCommand(opts *globalOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "licensing",
		Short: "Price plan seats and add-ons over a billing period",
		Example: `  pricectl licensing -p business --licenses business:10 --option visualStudio:5 --option enterpriseCloud:8 --months 3
  pricectl licensing -p enterprise --billing annual --security codeSecurity:20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.calc.Licensing(cmd.Context(), flags.selection())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(w io.Writer) {
				table := newTable(w, "Item", "Licenses", "Months", "Unit price", "Discounted", "Cost ("+reply.Currency+")")
				appendItems(table.Append, reply.Plans)
				appendItems(table.Append, reply.Options)
				appendItems(table.Append, reply.Security)
				table.SetFooter([]string{"", "", "", "", "Total", pricing.FormatAmount(reply.Total)})
				table.Render()
				fmt.Fprintf(w, "billing=%s github_plan=%s per_month=%s\n", reply.Billing, reply.GitHubPlan, pricing.FormatAmount(reply.PerMonth))
			})
		},
	}
	flags.addFlags(cmd.Flags())
	return cmd
}

func appendItems(add func([]string), items []pricing.LineItem) {
	for _, it := range items {
		add([]string{
			it.Name,
			strconv.Itoa(it.Licenses),
			strconv.Itoa(it.Months),
			pricing.FormatAmount(it.UnitPrice),
			strconv.Itoa(it.DiscountedUnits),
			pricing.FormatAmount(it.Cost),
		})
	}
}

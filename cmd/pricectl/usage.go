package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newUsageCommand(opts *globalOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Estimate premium request usage and overage per plan",
		Example: `  pricectl usage -p pro -p business -m "Claude Sonnet 4" -m "GPT-4.5" -r 100 -d 5
  pricectl usage -p business -m "o3" -m "Gemini 2.0 Flash" -r 1000 --divide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.calc.Usage(cmd.Context(), flags.selection())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(w io.Writer) {
				table := newTable(w, "Plan", "Premium used", "Included", "Overage units", "Overage cost ("+reply.Currency+")", "Dropped")
				for _, u := range reply.Usage {
					table.Append([]string{
						u.Plan,
						u.PremiumUsedText(),
						u.IncludedText(),
						pricing.FormatUnits(u.OverageUnits),
						pricing.FormatAmount(u.OverageCost),
						strconv.Itoa(u.DroppedRequests),
					})
				}
				table.Render()
				if len(reply.Usage) > 0 {
					fmt.Fprintln(w)
					models := newTable(w, "Model", "Multiplier", "Requests", "Premium used")
					for _, m := range reply.Usage[0].Models {
						used := pricing.FormatUnits(m.PremiumUsed)
						if m.Free {
							used = pricing.Unlimited
						}
						models.Append([]string{m.Model, m.Multiplier.String(), strconv.Itoa(m.Requests), used})
					}
					models.Render()
				}
			})
		},
	}
	flags.addFlags(cmd.Flags())
	return cmd
}

package main

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newPlansCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.calc.Plans(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(w io.Writer) {
				table := newTable(w, "Key", "Name", "Price", "Premium requests", "Scope")
				for _, p := range reply.Plans {
					included, ok := reply.Allowances[p.Key]
					if !ok || included == catalog.ValueUnspecified {
						included = pricing.Unlimited
						if !p.Unlimited {
							included = pricing.FormatUnits(decimal.NewFromInt(int64(p.Allowance)))
						}
					}
					table.Append([]string{p.Key, p.Name, pricing.FormatAmount(p.Price), included, string(p.Scope)})
				}
				table.Render()
			})
		},
	}
}

func newModelsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models and their premium request multipliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := opts.calc.Models(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(w io.Writer) {
				table := newTable(w, "Model", "Multiplier", "Note")
				for _, m := range reply.Models {
					mult := m.Multiplier.String()
					if m.Free() {
						mult = "0 (included)"
					}
					table.Append([]string{m.Name, mult, m.Note})
				}
				table.Render()
			})
		},
	}
}

func newCompareCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [plan...]",
		Short: "Compare plan features side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := opts.calc.Compare(cmd.Context(), args)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), cmp, func(w io.Writer) {
				header := []string{"Category", "Feature"}
				for _, p := range cmp.Plans {
					header = append(header, p.Name)
				}
				table := newTable(w, header...)
				for _, cat := range cmp.Categories {
					for _, row := range cat.Rows {
						name := row.Feature
						if row.Preview {
							name += " (preview)"
						}
						line := []string{cat.Name, name}
						for _, cell := range row.Cells {
							line = append(line, cellText(cell))
						}
						table.Append(line)
					}
				}
				table.SetAutoMergeCells(true)
				table.Render()
			})
		},
	}
}

func cellText(c catalog.Cell) string {
	switch c.Status {
	case catalog.StatusIncluded:
		return "yes"
	case catalog.StatusNotIncluded:
		return "-"
	default:
		return c.Value
	}
}

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xtding233/pricing-backend/internal/catalog"
)

// Organisation plans a Copilot subscription can sit on, cheapest first.
const (
	OrgPlanFree       = "free"
	OrgPlanTeam       = "team"
	OrgPlanEnterprise = "enterprise"
)

var orgPlanRank = map[string]int{
	OrgPlanFree:       0,
	OrgPlanTeam:       1,
	OrgPlanEnterprise: 2,
}

// LineItem is one billed row of a licensing breakdown.
type LineItem struct {
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Licenses        int             `json:"licenses"`
	Months          int             `json:"months"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	DiscountedUnits int             `json:"discounted_units"`
	FullPriceUnits  int             `json:"full_price_units"`
	Cost            decimal.Decimal `json:"cost"`
}

// Totals sums a breakdown. PerMonth is the monthly equivalent of Total.
type Totals struct {
	Months   int             `json:"months"`
	Total    decimal.Decimal `json:"total"`
	PerMonth decimal.Decimal `json:"per_month"`
}

// ComputePlanCost is price × licenses × months.
func ComputePlanCost(plan catalog.Plan, licenses, months int) decimal.Decimal {
	return plan.Price.Mul(decimal.NewFromInt(int64(clamp(licenses)))).Mul(decimal.NewFromInt(int64(clamp(months))))
}

// OptionContext carries what the rest of the selection means for one option.
type OptionContext struct {
	Months int
	// the option named by CoveredBy is toggled on, with this many licenses
	CoveringSelected bool
	CoveringLicenses int
}

// ComputeOptionCost prices an add-on.
//
// A "covered" option is charged at its discounted price for up to as many
// licenses as the covering option holds, and at full price for the rest:
//
//	discounted × min(A, B) × months + full × max(0, B − A) × months
//
// If the covering option is not selected or holds no licenses every license is
// full price.
func ComputeOptionCost(opt catalog.Option, licenses int, ctx OptionContext) LineItem {
	b := clamp(licenses)
	months := clamp(ctx.Months)
	item := LineItem{
		Key:             opt.Key,
		Name:            opt.Name,
		Licenses:        b,
		Months:          months,
		UnitPrice:       opt.Price,
		DiscountedPrice: opt.DiscountedPrice,
	}

	switch opt.Discount {
	case catalog.DiscountAlways:
		item.DiscountedUnits = b
	case catalog.DiscountCovered:
		if ctx.CoveringSelected {
			item.DiscountedUnits = min(clamp(ctx.CoveringLicenses), b)
		}
	}
	item.FullPriceUnits = b - item.DiscountedUnits

	m := decimal.NewFromInt(int64(months))
	discounted := opt.DiscountedPrice.Mul(decimal.NewFromInt(int64(item.DiscountedUnits))).Mul(m)
	full := opt.Price.Mul(decimal.NewFromInt(int64(item.FullPriceUnits))).Mul(m)
	item.Cost = discounted.Add(full)
	return item
}

// ComputeSecurityCost is price per active committer × committers × months.
func ComputeSecurityCost(addOn catalog.SecurityAddOn, committers, months int) LineItem {
	n, m := clamp(committers), clamp(months)
	return LineItem{
		Key:             addOn.Key,
		Name:            addOn.Name,
		Licenses:        n,
		Months:          m,
		UnitPrice:       addOn.Price,
		DiscountedPrice: addOn.Price,
		FullPriceUnits:  n,
		Cost:            addOn.Price.Mul(decimal.NewFromInt(int64(n))).Mul(decimal.NewFromInt(int64(m))),
	}
}

// AggregateTotal sums every line item of every group over months.
func AggregateTotal(months int, groups ...[]LineItem) Totals {
	t := Totals{Months: clamp(months), Total: decimal.Zero, PerMonth: decimal.Zero}
	for _, g := range groups {
		for _, it := range g {
			t.Total = t.Total.Add(it.Cost)
		}
	}
	if t.Months > 0 {
		t.PerMonth = t.Total.Div(decimal.NewFromInt(int64(t.Months)))
	}
	return t
}

// LicenseBreakdown is the result of a licensing calculation.
type LicenseBreakdown struct {
	Billing    BillingCycle `json:"billing"`
	GitHubPlan string       `json:"github_plan"`
	Standalone bool         `json:"standalone,omitempty"`
	Plans      []LineItem   `json:"plans"`
	Options    []LineItem   `json:"options"`
	Security   []LineItem   `json:"security"`
	Totals
}

// effectiveOrgPlan raises the requested organisation plan to what the selected
// subscriptions require.
func effectiveOrgPlan(requested string, plans []catalog.Plan) string {
	out := requested
	if _, ok := orgPlanRank[out]; !ok {
		out = OrgPlanFree
	}
	for _, p := range plans {
		if r, ok := orgPlanRank[p.RequiresOrgPlan]; ok && r > orgPlanRank[out] {
			out = p.RequiresOrgPlan
		}
	}
	return out
}

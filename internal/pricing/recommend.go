package pricing

import (
	"sort"

	"github.com/golang/glog"
	"github.com/shopspring/decimal"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/metrics"
)

// PlanQuote is what one month of a usage profile costs on one plan.
type PlanQuote struct {
	Plan         string          `json:"plan"`
	Name         string          `json:"name"`
	Seats        decimal.Decimal `json:"seats"` // price × developers
	Overage      decimal.Decimal `json:"overage"`
	Total        decimal.Decimal `json:"total"`
	PerDeveloper decimal.Decimal `json:"per_developer"`
	Usage        UsageCost       `json:"usage"`
}

// Recommendation ranks candidate plans cheapest first.
type Recommendation struct {
	Best   string      `json:"best,omitempty"`
	Quotes []PlanQuote `json:"quotes"`
}

// QuotePlan prices one month of usage on plan for the given number of developers.
func QuotePlan(plan catalog.Plan, usage UsageCost, developers int) PlanQuote {
	devs := clamp(developers)
	q := PlanQuote{
		Plan:         plan.Key,
		Name:         plan.Name,
		Seats:        ComputePlanCost(plan, devs, 1),
		Overage:      usage.OverageCost,
		PerDeveloper: decimal.Zero,
		Usage:        usage,
	}
	q.Total = q.Seats.Add(q.Overage)
	if devs > 0 {
		q.PerDeveloper = q.Total.Div(decimal.NewFromInt(int64(devs)))
	}
	return q
}

// RankPlans sorts quotes by total, cheapest first. Equal totals keep their order.
func RankPlans(quotes []PlanQuote) []PlanQuote {
	out := append([]PlanQuote(nil), quotes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.LessThan(out[j].Total)
	})
	return out
}

// Recommend quotes the selection's usage on each selected plan, or on every
// catalog plan when none is selected, and ranks the results.
func (e *Engine) Recommend(sel Selection) (Recommendation, error) {
	c := e.catalogs.Catalog()

	keys := sel.Plans
	if len(keys) == 0 {
		for _, p := range c.Plans {
			keys = append(keys, p.Key)
		}
	}
	candidate := sel
	candidate.Plans = keys
	usage, err := e.Usage(candidate)
	if err != nil {
		return Recommendation{}, err
	}

	quotes := make([]PlanQuote, 0, len(usage))
	for _, u := range usage {
		p, err := c.Plan(u.Plan)
		if err != nil {
			return Recommendation{}, e.fail(err)
		}
		quotes = append(quotes, QuotePlan(p, u, sel.DeveloperCount.Int()))
	}

	out := Recommendation{Quotes: RankPlans(quotes)}
	if len(out.Quotes) > 0 {
		out.Best = out.Quotes[0].Plan
		glog.V(4).Infof("recommend best=%s total=%s of %d plans", out.Best, out.Quotes[0].Total, len(out.Quotes))
	}
	metrics.IncCalculations(metrics.OperationRecommend)
	return out, nil
}

package pricing

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/xtding233/pricing-backend/internal/catalog"
)

func Test_QuotePlan(t *testing.T) {
	g := gomega.NewWithT(t)
	p := catalog.Plan{Key: "business", Name: "Business", Price: decimal.NewFromInt(19)}
	u := UsageCost{Plan: "business", OverageCost: decimal.RequireFromString("4.00")}

	q := QuotePlan(p, u, 4)
	g.Expect(q.Seats.StringFixed(2)).To(gomega.Equal("76.00"))
	g.Expect(q.Total.StringFixed(2)).To(gomega.Equal("80.00"))
	g.Expect(q.PerDeveloper.StringFixed(2)).To(gomega.Equal("20.00"))

	none := QuotePlan(p, u, 0)
	g.Expect(none.Total.StringFixed(2)).To(gomega.Equal("4.00"))
	g.Expect(none.PerDeveloper.IsZero()).To(gomega.BeTrue())
}

func Test_RankPlans(t *testing.T) {
	g := gomega.NewWithT(t)
	in := []PlanQuote{
		{Plan: "a", Total: decimal.NewFromInt(30)},
		{Plan: "b", Total: decimal.NewFromInt(10)},
		{Plan: "c", Total: decimal.NewFromInt(30)},
		{Plan: "d", Total: decimal.NewFromInt(5)},
	}
	got := RankPlans(in)
	keys := make([]string, 0, len(got))
	for _, q := range got {
		keys = append(keys, q.Plan)
	}
	g.Expect(keys).To(gomega.Equal([]string{"d", "b", "a", "c"}))
	g.Expect(in[0].Plan).To(gomega.Equal("a"))
}

func Test_Engine_Recommend(t *testing.T) {
	tests := []struct {
		name     string
		plans    []string
		requests Count
		best     string
		quotes   int
	}{
		// no premium usage: the free plan wins outright
		{name: "light usage over every plan", requests: 0, best: "free", quotes: 5},
		// 1200 premium requests: pro pays 10 + 900×0.04 = 46, pro+ pays 39
		{name: "heavy usage picks the bigger allowance", plans: []string{"pro", "pro_plus"}, requests: 1200, best: "pro_plus", quotes: 2},
		// 200 premium requests fit in pro's allowance
		{name: "moderate usage", plans: []string{"pro", "pro_plus"}, requests: 200, best: "pro", quotes: 2},
	}
	for _, testcase := range tests {
		tt := testcase
		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			sel := NewSelection()
			sel.Plans = tt.plans
			sel.Models = []string{"GPT-4o"}
			sel.RequestCount = tt.requests

			got, err := newTestEngine(ScopePerSeat).Recommend(sel)
			g.Expect(err).ToNot(gomega.HaveOccurred())
			g.Expect(got.Best).To(gomega.Equal(tt.best))
			g.Expect(got.Quotes).To(gomega.HaveLen(tt.quotes))
		})
	}
}

func Test_Engine_Recommend_UnknownPlan(t *testing.T) {
	g := gomega.NewWithT(t)
	sel := NewSelection()
	sel.Plans = []string{"diamond"}
	_, err := newTestEngine(ScopePerSeat).Recommend(sel)
	_, ok := catalog.AsReferenceNotFound(err)
	g.Expect(ok).To(gomega.BeTrue())
}

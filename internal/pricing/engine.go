package pricing

import (
	"github.com/golang/glog"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/metrics"
)

// Config tunes the engine.
type Config struct {
	AllowanceScope ScopePolicy
}

// Engine resolves selections against the current catalog snapshot and runs
// the pricing rules. It holds no per-request state.
type Engine struct {
	catalogs catalog.Provider
	cfg      Config
}

func NewEngine(p catalog.Provider, cfg Config) *Engine {
	return &Engine{catalogs: p, cfg: cfg}
}

// Catalog returns the snapshot the engine currently prices against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalogs.Catalog() }

// Usage evaluates the selection's request usage against every selected plan.
func (e *Engine) Usage(sel Selection) ([]UsageCost, error) {
	c := e.catalogs.Catalog()

	plans, err := resolvePlans(c, sel.Plans)
	if err != nil {
		return nil, e.fail(err)
	}
	models := make([]catalog.Model, 0, len(sel.Models))
	for _, name := range sel.Models {
		m, err := c.Model(name)
		if err != nil {
			return nil, e.fail(err)
		}
		models = append(models, m)
	}

	in := UsageInput{
		RequestCount:   sel.RequestCount.Int(),
		DeveloperCount: sel.DeveloperCount.Int(),
		DivideRequests: sel.DivideRequests,
	}
	out := make([]UsageCost, 0, len(plans))
	for _, p := range plans {
		u := ComputeUsageCost(in, p, models, c.AdditionalRequestPrice, e.cfg.AllowanceScope.Resolve(p))
		glog.V(4).Infof("usage plan=%s premium_used=%s included=%s overage=%s", p.Key, u.PremiumUsed, u.Included, u.OverageUnits)
		out = append(out, u)
	}
	metrics.IncCalculations(metrics.OperationUsage)
	return out, nil
}

// Licensing prices plan seats, add-on options and security add-ons for the
// selection's billing period.
func (e *Engine) Licensing(sel Selection) (LicenseBreakdown, error) {
	c := e.catalogs.Catalog()
	sel = sel.deduped()

	plans, err := resolvePlans(c, sel.Plans)
	if err != nil {
		return LicenseBreakdown{}, e.fail(err)
	}

	billing := sel.Billing
	if billing != BillingAnnual {
		billing = BillingMonthly
	}
	months := billing.Months(sel.Months.Int())

	out := LicenseBreakdown{
		Billing:    billing,
		GitHubPlan: effectiveOrgPlan(sel.GitHubPlan, plans),
		Standalone: sel.Standalone,
		Plans:      make([]LineItem, 0, len(plans)),
		Options:    []LineItem{},
		Security:   []LineItem{},
	}

	for _, p := range plans {
		n := sel.planLicenses(p.Key)
		out.Plans = append(out.Plans, LineItem{
			Key:             p.Key,
			Name:            p.Name,
			Licenses:        n,
			Months:          months,
			UnitPrice:       p.Price,
			DiscountedPrice: p.Price,
			FullPriceUnits:  n,
			Cost:            ComputePlanCost(p, n, months),
		})
	}

	// standalone mode prices nothing but the plans, whatever is still toggled
	if !sel.Standalone {
		for _, o := range sel.Options {
			opt, err := c.Option(o.Key)
			if err != nil {
				return LicenseBreakdown{}, e.fail(err)
			}
			ctx := OptionContext{Months: months}
			if opt.CoveredBy != "" {
				if cov, ok := sel.option(opt.CoveredBy); ok {
					ctx.CoveringSelected = true
					ctx.CoveringLicenses = cov.Licenses.Int()
				}
			}
			out.Options = append(out.Options, ComputeOptionCost(opt, o.Licenses.Int(), ctx))
		}
		for _, ss := range sel.Security {
			addOn, err := c.SecurityAddOn(ss.Key)
			if err != nil {
				return LicenseBreakdown{}, e.fail(err)
			}
			out.Security = append(out.Security, ComputeSecurityCost(addOn, ss.Licenses.Int(), months))
		}
	}

	out.Totals = AggregateTotal(months, out.Plans, out.Options, out.Security)
	glog.V(4).Infof("licensing billing=%s months=%d total=%s", billing, months, out.Total)
	metrics.IncCalculations(metrics.OperationLicensing)
	return out, nil
}

// Compare lays out the feature comparison table for the given plans.
func (e *Engine) Compare(planKeys []string) (catalog.Comparison, error) {
	cmp, err := e.catalogs.Catalog().Compare(planKeys)
	if err != nil {
		return catalog.Comparison{}, e.fail(err)
	}
	metrics.IncCalculations(metrics.OperationCompare)
	return cmp, nil
}

func (e *Engine) fail(err error) error {
	if rnf, ok := catalog.AsReferenceNotFound(err); ok {
		metrics.IncReferenceNotFound(string(rnf.Kind))
		glog.V(2).Infof("rejecting selection: %v", err)
	}
	return err
}

func resolvePlans(c *catalog.Catalog, keys []string) ([]catalog.Plan, error) {
	plans := make([]catalog.Plan, 0, len(keys))
	for _, k := range keys {
		p, err := c.Plan(k)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

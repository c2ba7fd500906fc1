package catalog

import (
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

// DefaultAdditionalRequestPrice is the per-request overage price when the data omits one.
var DefaultAdditionalRequestPrice = decimal.RequireFromString("0.04")

// Build validates a merged RawCatalog and converts it into a Catalog snapshot.
func Build(raw RawCatalog) (*Catalog, error) {
	if err := ValidateRaw(raw); err != nil {
		return nil, err
	}

	c := &Catalog{
		Version:                raw.Version,
		Currency:               raw.Currency,
		AdditionalRequestPrice: DefaultAdditionalRequestPrice,
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if raw.AdditionalRequestPrice != nil {
		c.AdditionalRequestPrice = decimal.NewFromFloat(*raw.AdditionalRequestPrice)
	}

	for _, p := range raw.Plans {
		plan := Plan{
			Key:         p.Key,
			Name:        p.Name,
			Price:       decimal.NewFromFloat(p.Price),
			Billing:     p.Billing,
			Description: p.Description,
			Scope:       AllowanceScope(p.AllowanceScope),
			URL:         p.URL,

			RequiresOrgPlan: p.RequiresOrgPlan,
		}
		if plan.Scope == "" {
			plan.Scope = ScopeSeat
		}
		if p.Allowance == nil {
			plan.Unlimited = true
		} else {
			plan.Allowance = *p.Allowance
		}
		c.Plans = append(c.Plans, plan)
	}

	for _, m := range raw.Models {
		c.Models = append(c.Models, Model{
			Name:       m.Name,
			Multiplier: decimal.NewFromFloat(m.Multiplier),
			Note:       m.Note,
		})
	}

	for _, o := range raw.Options {
		opt := Option{
			Key:         o.Key,
			Name:        o.Name,
			Description: o.Description,
			Price:       decimal.NewFromFloat(o.Price),
			Discount:    DiscountRule(o.Discount),
			CoveredBy:   o.CoveredBy,
		}
		if opt.Discount == "" {
			opt.Discount = DiscountNone
		}
		// without an explicit discounted price the option never gets cheaper
		opt.DiscountedPrice = opt.Price
		if o.DiscountedPrice != nil {
			opt.DiscountedPrice = decimal.NewFromFloat(*o.DiscountedPrice)
		}
		c.Options = append(c.Options, opt)
	}

	for _, s := range raw.Security {
		c.Security = append(c.Security, SecurityAddOn{
			Key:         s.Key,
			Name:        s.Name,
			Description: s.Description,
			Price:       decimal.NewFromFloat(s.Price),
		})
	}

	for _, rc := range raw.FeatureCategories {
		cat := FeatureCategory{Name: rc.Name}
		for _, f := range rc.Features {
			values := make(map[string]string, len(f.Values))
			for k, v := range f.Values {
				values[k] = v
			}
			cat.Features = append(cat.Features, Feature{Name: f.Name, Preview: f.Preview, Values: values})
		}
		c.FeatureCategories = append(c.FeatureCategories, cat)
	}

	return c, nil
}

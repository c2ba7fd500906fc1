package catalog

import (
	"strings"
)

// FeatureStatus classifies a feature cell for display.
type FeatureStatus string

const (
	StatusIncluded    FeatureStatus = "included"
	StatusNotIncluded FeatureStatus = "not_included"
	StatusText        FeatureStatus = "text"
)

const (
	valueIncluded    = "Included"
	valueNotIncluded = "Not included"
	ValueUnspecified = "Not specified"
)

// ClassifyFeature maps a cell value to its status.
func ClassifyFeature(value string) FeatureStatus {
	switch value {
	case valueIncluded:
		return StatusIncluded
	case valueNotIncluded, "":
		return StatusNotIncluded
	default:
		return StatusText
	}
}

type Cell struct {
	Plan   string        `json:"plan"`
	Value  string        `json:"value"`
	Status FeatureStatus `json:"status"`
}

type ComparisonRow struct {
	Feature string `json:"feature"`
	Preview bool   `json:"preview,omitempty"`
	Cells   []Cell `json:"cells"`
}

type ComparisonCategory struct {
	Name string          `json:"name"`
	Rows []ComparisonRow `json:"rows"`
}

type Comparison struct {
	Plans      []Plan               `json:"plans"`
	Categories []ComparisonCategory `json:"categories"`
}

// Compare lays out the feature table for the given plans, in the order given.
// With no keys every plan is compared.
func (c *Catalog) Compare(planKeys []string) (Comparison, error) {
	var plans []Plan
	if len(planKeys) == 0 {
		plans = append(plans, c.Plans...)
	}
	for _, k := range planKeys {
		p, err := c.Plan(k)
		if err != nil {
			return Comparison{}, err
		}
		plans = append(plans, p)
	}

	out := Comparison{Plans: plans}
	for _, cat := range c.FeatureCategories {
		cc := ComparisonCategory{Name: cat.Name}
		for _, f := range cat.Features {
			row := ComparisonRow{Feature: f.Name, Preview: f.Preview}
			for _, p := range plans {
				v := f.Values[p.Key]
				row.Cells = append(row.Cells, Cell{Plan: p.Key, Value: v, Status: ClassifyFeature(v)})
			}
			cc.Rows = append(cc.Rows, row)
		}
		out.Categories = append(out.Categories, cc)
	}
	return out, nil
}

// FeatureValue returns the text a plan shows for a feature, or "Not specified".
func (c *Catalog) FeatureValue(category, feature, planKey string) string {
	for _, cat := range c.FeatureCategories {
		if !strings.EqualFold(cat.Name, category) {
			continue
		}
		for _, f := range cat.Features {
			if strings.EqualFold(f.Name, feature) {
				if v, ok := f.Values[planKey]; ok {
					return v
				}
			}
		}
	}
	return ValueUnspecified
}

// PremiumRequestsText is the allowance description shown next to a plan.
func (c *Catalog) PremiumRequestsText(planKey string) string {
	return c.FeatureValue("Premium requests", "Premium requests", planKey)
}

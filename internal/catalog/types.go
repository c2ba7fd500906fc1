package catalog

import "github.com/shopspring/decimal"

// Raw catalog loaded from YAML; mirrors data/default.yaml.
type RawCatalog struct {
	Version                string        `yaml:"version,omitempty"`
	Currency               string        `yaml:"currency,omitempty" validate:"omitempty,len=3"`
	AdditionalRequestPrice *float64      `yaml:"additional_request_price,omitempty" validate:"omitempty,gte=0"`
	Plans                  []RawPlan     `yaml:"plans,omitempty" validate:"dive"`
	Models                 []RawModel    `yaml:"models,omitempty" validate:"dive"`
	Options                []RawOption   `yaml:"options,omitempty" validate:"dive"`
	Security               []RawSecurity `yaml:"security,omitempty" validate:"dive"`
	FeatureCategories      []RawCategory `yaml:"feature_categories,omitempty" validate:"dive"`
}

type RawPlan struct {
	Key            string  `yaml:"key" validate:"required"`
	Name           string  `yaml:"name" validate:"required"`
	Price          float64 `yaml:"price" validate:"gte=0"`
	Billing        string  `yaml:"billing,omitempty"`
	Description    string  `yaml:"description,omitempty"`
	Allowance      *int    `yaml:"allowance,omitempty" validate:"omitempty,gte=0"` // nil = unlimited
	AllowanceScope string  `yaml:"allowance_scope,omitempty" validate:"omitempty,oneof=seat organization"`
	URL            string  `yaml:"url,omitempty" validate:"omitempty,url"`

	// organisation plan the subscription needs, e.g. enterprise
	RequiresOrgPlan string `yaml:"requires_org_plan,omitempty" validate:"omitempty,oneof=free team enterprise"`
}

type RawModel struct {
	Name       string  `yaml:"name" validate:"required"`
	Multiplier float64 `yaml:"multiplier" validate:"gte=0"`
	Note       string  `yaml:"note,omitempty"`
}

type RawOption struct {
	Key             string   `yaml:"key" validate:"required"`
	Name            string   `yaml:"name" validate:"required"`
	Description     string   `yaml:"description,omitempty"`
	Price           float64  `yaml:"price" validate:"gte=0"`
	DiscountedPrice *float64 `yaml:"discounted_price,omitempty" validate:"omitempty,gte=0"`
	Discount        string   `yaml:"discount,omitempty" validate:"omitempty,oneof=none always covered"`
	CoveredBy       string   `yaml:"covered_by,omitempty"`
}

type RawSecurity struct {
	Key         string  `yaml:"key" validate:"required"`
	Name        string  `yaml:"name" validate:"required"`
	Description string  `yaml:"description,omitempty"`
	Price       float64 `yaml:"price" validate:"gte=0"`
}

type RawCategory struct {
	Name     string       `yaml:"name" validate:"required"`
	Features []RawFeature `yaml:"features" validate:"dive"`
}

type RawFeature struct {
	Name    string            `yaml:"name" validate:"required"`
	Preview bool              `yaml:"preview,omitempty"`
	Values  map[string]string `yaml:"values"`
}

// AllowanceScope tells whether a plan's allowance is granted per seat or once per organization.
type AllowanceScope string

const (
	ScopeSeat         AllowanceScope = "seat"
	ScopeOrganization AllowanceScope = "organization"
)

// DiscountRule selects when an option is charged at its discounted price.
type DiscountRule string

const (
	DiscountNone    DiscountRule = "none"
	DiscountAlways  DiscountRule = "always"
	DiscountCovered DiscountRule = "covered" // discounted up to the covering option's license count
)

// Normalized reference data used by internal/pricing.
type Plan struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Billing     string          `json:"billing,omitempty"`
	Description string          `json:"description,omitempty"`
	Allowance   int             `json:"allowance"`
	Unlimited   bool            `json:"unlimited,omitempty"`
	Scope       AllowanceScope  `json:"allowance_scope"`
	URL         string          `json:"url,omitempty"`

	RequiresOrgPlan string `json:"requires_org_plan,omitempty"`
}

type Model struct {
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Note       string          `json:"note,omitempty"`
}

// Free reports whether requests against the model are unmetered.
func (m Model) Free() bool { return m.Multiplier.IsZero() }

type Option struct {
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Discount        DiscountRule    `json:"discount"`
	CoveredBy       string          `json:"covered_by,omitempty"`
}

// SecurityAddOn is billed per active committer per month.
type SecurityAddOn struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type FeatureCategory struct {
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Name    string            `json:"name"`
	Preview bool              `json:"preview,omitempty"`
	Values  map[string]string `json:"values"` // plan key -> text
}

// Catalog is an immutable snapshot of the reference data.
type Catalog struct {
	Version                string            `json:"version"`
	Currency               string            `json:"currency"`
	AdditionalRequestPrice decimal.Decimal   `json:"additional_request_price"`
	Plans                  []Plan            `json:"plans"`
	Models                 []Model           `json:"models"`
	Options                []Option          `json:"options"`
	Security               []SecurityAddOn   `json:"security"`
	FeatureCategories      []FeatureCategory `json:"feature_categories"`
}

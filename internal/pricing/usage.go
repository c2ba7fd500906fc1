package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xtding233/pricing-backend/internal/catalog"
)

// ScopePolicy decides whether a plan's allowance is multiplied by the developer count.
type ScopePolicy string

const (
	ScopePerSeat         ScopePolicy = "seat"         // allowance × developers
	ScopePerOrganization ScopePolicy = "organization" // allowance once
	ScopeFromPlan        ScopePolicy = "plan"         // whatever the plan declares
)

// Resolve returns the scope to apply to plan. An empty policy means per seat.
func (p ScopePolicy) Resolve(plan catalog.Plan) catalog.AllowanceScope {
	switch p {
	case ScopePerOrganization:
		return catalog.ScopeOrganization
	case ScopeFromPlan:
		if plan.Scope != "" {
			return plan.Scope
		}
	}
	return catalog.ScopeSeat
}

// UsageInput holds the clamped quantities of a usage calculation.
type UsageInput struct {
	RequestCount   int
	DeveloperCount int
	DivideRequests bool // split RequestCount across metered models instead of replicating it
}

// ModelUsage is one model's share of a usage calculation.
type ModelUsage struct {
	Model       string          `json:"model"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Free        bool            `json:"free,omitempty"`
	Requests    int             `json:"requests"`
	PremiumUsed decimal.Decimal `json:"premium_used"`
}

// UsageCost is the premium request breakdown for one plan.
type UsageCost struct {
	Plan              string          `json:"plan"`
	PremiumUsed       decimal.Decimal `json:"premium_used"`
	Unlimited         bool            `json:"unlimited,omitempty"` // every selected model is free
	Included          decimal.Decimal `json:"included"`
	IncludedUnlimited bool            `json:"included_unlimited,omitempty"`
	OverageUnits      decimal.Decimal `json:"overage_units"`
	OverageCost       decimal.Decimal `json:"overage_cost"`
	// requests lost to floor division under the divide policy; they are not reallocated
	DroppedRequests int          `json:"dropped_requests,omitempty"`
	Models          []ModelUsage `json:"models"`
}

// PremiumUsedText renders PremiumUsed, or "Unlimited" when only free models were used.
func (u UsageCost) PremiumUsedText() string {
	if u.Unlimited {
		return Unlimited
	}
	return FormatUnits(u.PremiumUsed)
}

// IncludedText renders the allowance.
func (u UsageCost) IncludedText() string {
	if u.IncludedUnlimited {
		return Unlimited
	}
	return FormatUnits(u.Included)
}

// ComputeUsageCost turns request counts and model multipliers into premium
// usage and overage against plan's allowance. unitPrice is the price of one
// overage unit. It never fails: negative quantities count as zero.
//
// With several models the request count is replicated across every model
// unless in.DivideRequests is set, in which case it is split evenly (floor)
// across the metered models only.
func ComputeUsageCost(in UsageInput, plan catalog.Plan, models []catalog.Model, unitPrice decimal.Decimal, scope catalog.AllowanceScope) UsageCost {
	requests := clamp(in.RequestCount)
	devs := decimal.NewFromInt(int64(clamp(in.DeveloperCount)))

	out := UsageCost{
		Plan:         plan.Key,
		PremiumUsed:  decimal.Zero,
		Included:     decimal.Zero,
		OverageUnits: decimal.Zero,
		OverageCost:  decimal.Zero,
		Models:       make([]ModelUsage, 0, len(models)),
	}

	perModel := requests
	if in.DivideRequests && len(models) > 1 {
		metered := 0
		for _, m := range models {
			if !m.Free() {
				metered++
			}
		}
		if metered > 0 {
			perModel = requests / metered
			out.DroppedRequests = requests - perModel*metered
		}
	}

	free := 0
	for _, m := range models {
		mu := ModelUsage{
			Model:       m.Name,
			Multiplier:  m.Multiplier,
			Free:        m.Free(),
			Requests:    perModel,
			PremiumUsed: decimal.Zero,
		}
		if mu.Free {
			free++
		} else {
			mu.PremiumUsed = decimal.NewFromInt(int64(perModel)).Mul(m.Multiplier).Mul(devs)
		}
		out.PremiumUsed = out.PremiumUsed.Add(mu.PremiumUsed)
		out.Models = append(out.Models, mu)
	}
	out.Unlimited = len(models) > 0 && free == len(models)

	if plan.Unlimited {
		out.IncludedUnlimited = true
		return out
	}
	out.Included = decimal.NewFromInt(int64(clamp(plan.Allowance)))
	if scope != catalog.ScopeOrganization {
		out.Included = out.Included.Mul(devs)
	}

	if out.PremiumUsed.GreaterThan(out.Included) {
		out.OverageUnits = out.PremiumUsed.Sub(out.Included)
	}
	if unitPrice.IsPositive() {
		out.OverageCost = out.OverageUnits.Mul(unitPrice)
	}
	return out
}

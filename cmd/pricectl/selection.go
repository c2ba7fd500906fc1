package main

import (
	"github.com/spf13/pflag"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

// selectionFlags are the calculator inputs shared by usage and licensing.
type selectionFlags struct {
	plans      []string
	models     []string
	requests   string
	developers string
	months     string
	billing    string
	githubPlan string
	divide     bool
	licenses   []string
	options    []string
	security   []string
	standalone bool
}

func (f *selectionFlags) addFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&f.plans, "plan", "p", nil, "plan key, repeatable")
	fs.StringArrayVarP(&f.models, "model", "m", nil, "model name, repeatable")
	fs.StringVarP(&f.requests, "requests", "r", "0", "requests per developer per month")
	fs.StringVarP(&f.developers, "developers", "d", "1", "number of developers")
	fs.StringVar(&f.months, "months", "1", "billed months for monthly billing")
	fs.StringVar(&f.billing, "billing", string(pricing.BillingMonthly), "billing cycle: monthly or annual")
	fs.StringVar(&f.githubPlan, "github-plan", pricing.OrgPlanFree, "GitHub organisation plan: free, team or enterprise")
	fs.BoolVar(&f.divide, "divide", false, "split requests across models instead of sending them to each")
	fs.StringArrayVar(&f.licenses, "licenses", nil, "plan license count as key:n, repeatable")
	fs.StringArrayVar(&f.options, "option", nil, "add-on option as key:n, repeatable")
	fs.StringArrayVar(&f.security, "security", nil, "security add-on as key:n, repeatable")
	fs.BoolVar(&f.standalone, "standalone", false, "price the plans alone, without add-ons")
}

func (f *selectionFlags) selection() pricing.Selection {
	sel := pricing.NewSelection()
	sel.Plans = f.plans
	sel.Models = f.models
	sel.RequestCount = pricing.Count(pricing.ParseCount(f.requests))
	sel.DeveloperCount = pricing.Count(pricing.ParseCount(f.developers))
	sel.Months = pricing.Count(pricing.ParseCount(f.months))
	sel.Billing = pricing.BillingCycle(f.billing)
	sel.GitHubPlan = f.githubPlan
	sel.DivideRequests = f.divide
	sel = sel.WithKeyCounts(f.licenses, f.options, f.security)
	if f.standalone {
		sel = sel.WithStandalone(true)
	}
	return sel
}

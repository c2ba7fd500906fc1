package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseCount reads a quantity typed by a user. Blank, non-numeric, negative and
// non-finite input yields 0; fractional input is truncated.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v > math.MaxInt32 {
			return math.MaxInt32
		}
		return clamp(v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Count is a non-negative quantity that decodes permissively from JSON numbers,
// strings and null.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*c = 0
			return nil
		}
		*c = Count(ParseCount(s))
		return nil
	}
	*c = Count(ParseCount(string(b)))
	return nil
}

// Int returns the count clamped to >= 0.
func (c Count) Int() int { return clamp(int(c)) }

// BillingCycle selects the period a licensing breakdown covers.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingAnnual  BillingCycle = "annual"
)

// Months returns the number of billed months: 12 for annual, else the given months clamped to >= 0.
func (b BillingCycle) Months(months int) int {
	if b == BillingAnnual {
		return 12
	}
	return clamp(months)
}

// OptionSelection is a toggled add-on with its license count.
type OptionSelection struct {
	Key      string `json:"key"`
	Licenses Count  `json:"licenses"`
}

// Selection is everything a user picked. It is a value: the transition
// methods return modified copies and never touch the receiver.
type Selection struct {
	Plans          []string          `json:"plans"`
	PlanLicenses   map[string]Count  `json:"plan_licenses,omitempty"`
	Models         []string          `json:"models"`
	RequestCount   Count             `json:"request_count"`
	DeveloperCount Count             `json:"developer_count"`
	Billing        BillingCycle      `json:"billing,omitempty"`
	Months         Count             `json:"months"`
	Options        []OptionSelection `json:"options,omitempty"`
	Security       []OptionSelection `json:"security,omitempty"`
	Standalone     bool              `json:"standalone,omitempty"`
	DivideRequests bool              `json:"divide_requests,omitempty"`
	GitHubPlan     string            `json:"github_plan,omitempty"`
}

// NewSelection returns the calculator's starting state: one developer, one month, monthly billing.
func NewSelection() Selection {
	return Selection{
		DeveloperCount: 1,
		Months:         1,
		Billing:        BillingMonthly,
		GitHubPlan:     OrgPlanFree,
	}
}

func (s Selection) clone() Selection {
	out := s
	out.Plans = append([]string(nil), s.Plans...)
	out.Models = append([]string(nil), s.Models...)
	out.Options = append([]OptionSelection(nil), s.Options...)
	out.Security = append([]OptionSelection(nil), s.Security...)
	if s.PlanLicenses != nil {
		out.PlanLicenses = make(map[string]Count, len(s.PlanLicenses))
		for k, v := range s.PlanLicenses {
			out.PlanLicenses[k] = v
		}
	}
	return out
}

// WithStandalone switches standalone mode. Turning it on clears every option and
// security add-on; turning it off restores nothing.
func (s Selection) WithStandalone(on bool) Selection {
	out := s.clone()
	out.Standalone = on
	if on {
		out.Options = nil
		out.Security = nil
	}
	return out
}

// ToggleOption adds the option with zero licenses or removes it. Picking an
// option leaves standalone mode.
func (s Selection) ToggleOption(key string) Selection {
	out := s.clone()
	out.Standalone = false
	out.Options = toggle(out.Options, key)
	return out
}

// ToggleSecurity adds or removes a security add-on, leaving standalone mode.
func (s Selection) ToggleSecurity(key string) Selection {
	out := s.clone()
	out.Standalone = false
	out.Security = toggle(out.Security, key)
	return out
}

// WithOptionLicenses sets the license count of an already toggled option.
func (s Selection) WithOptionLicenses(key string, n int) Selection {
	out := s.clone()
	for i := range out.Options {
		if out.Options[i].Key == key {
			out.Options[i].Licenses = Count(clamp(n))
		}
	}
	for i := range out.Security {
		if out.Security[i].Key == key {
			out.Security[i].Licenses = Count(clamp(n))
		}
	}
	return out
}

func toggle(list []OptionSelection, key string) []OptionSelection {
	for i, o := range list {
		if o.Key == key {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, OptionSelection{Key: key})
}

// deduped collapses repeated option and security keys: add-ons are a set, and
// the last entry for a key carries its license count.
func (s Selection) deduped() Selection {
	out := s.clone()
	out.Options = uniqueByKey(out.Options)
	out.Security = uniqueByKey(out.Security)
	return out
}

func uniqueByKey(list []OptionSelection) []OptionSelection {
	at := make(map[string]int, len(list))
	out := list[:0]
	for _, o := range list {
		if i, ok := at[o.Key]; ok {
			out[i] = o
			continue
		}
		at[o.Key] = len(out)
		out = append(out, o)
	}
	return out
}

// SplitKeyCount reads "key:count"; a missing or bad count is 0.
func SplitKeyCount(s string) (string, int) {
	key, count, _ := strings.Cut(s, ":")
	return strings.TrimSpace(key), ParseCount(count)
}

// WithKeyCounts applies "key:count" pairs as typed on a command line or query
// string: plan license counts, options and security add-ons. A repeated add-on
// key updates its count. Picking any add-on leaves standalone mode.
func (s Selection) WithKeyCounts(licenses, options, security []string) Selection {
	out := s.clone()
	for _, v := range licenses {
		key, n := SplitKeyCount(v)
		if out.PlanLicenses == nil {
			out.PlanLicenses = map[string]Count{}
		}
		out.PlanLicenses[key] = Count(n)
	}
	for _, v := range options {
		key, n := SplitKeyCount(v)
		out.Options = setAddOn(out.Options, key, n)
		out.Standalone = false
	}
	for _, v := range security {
		key, n := SplitKeyCount(v)
		out.Security = setAddOn(out.Security, key, n)
		out.Standalone = false
	}
	return out
}

func setAddOn(list []OptionSelection, key string, n int) []OptionSelection {
	for i := range list {
		if list[i].Key == key {
			list[i].Licenses = Count(n)
			return list
		}
	}
	return append(list, OptionSelection{Key: key, Licenses: Count(n)})
}

// option returns the toggled option with the given key.
func (s Selection) option(key string) (OptionSelection, bool) {
	for _, o := range s.Options {
		if o.Key == key {
			return o, true
		}
	}
	return OptionSelection{}, false
}

// planLicenses is the license count for one selected plan; plans without an
// explicit count use the developer count.
func (s Selection) planLicenses(key string) int {
	if n, ok := s.PlanLicenses[key]; ok {
		return n.Int()
	}
	return s.DeveloperCount.Int()
}

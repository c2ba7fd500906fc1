package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New()

// ValidateRaw checks field constraints and cross-references of a merged RawCatalog.
func ValidateRaw(cfg RawCatalog) error {
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "catalog validation failed")
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Sprintf("%s must satisfy %s", fieldPath(fe.Namespace()), ruleText(fe)))
		}
	}

	if len(cfg.Plans) == 0 {
		errs = append(errs, "plans must not be empty")
	}
	if len(cfg.Models) == 0 {
		errs = append(errs, "models must not be empty")
	}

	planKeys := map[string]bool{}
	for i, p := range cfg.Plans {
		if planKeys[p.Key] {
			errs = append(errs, fmt.Sprintf("plans[%d].key %q is duplicated", i, p.Key))
		}
		planKeys[p.Key] = true
	}
	modelNames := map[string]bool{}
	for i, m := range cfg.Models {
		if modelNames[m.Name] {
			errs = append(errs, fmt.Sprintf("models[%d].name %q is duplicated", i, m.Name))
		}
		modelNames[m.Name] = true
	}

	optionKeys := map[string]bool{}
	for i, o := range cfg.Options {
		if optionKeys[o.Key] {
			errs = append(errs, fmt.Sprintf("options[%d].key %q is duplicated", i, o.Key))
		}
		optionKeys[o.Key] = true
		if o.DiscountedPrice != nil && *o.DiscountedPrice > o.Price {
			errs = append(errs, fmt.Sprintf("options[%d].discounted_price must be <= price", i))
		}
	}
	for i, o := range cfg.Options {
		switch o.Discount {
		case string(DiscountCovered):
			if o.CoveredBy == "" {
				errs = append(errs, fmt.Sprintf("options[%d].covered_by is required for discount=covered", i))
			} else if o.CoveredBy == o.Key {
				errs = append(errs, fmt.Sprintf("options[%d].covered_by must reference another option", i))
			} else if !optionKeys[o.CoveredBy] {
				errs = append(errs, fmt.Sprintf("options[%d].covered_by %q is not a known option", i, o.CoveredBy))
			}
		default:
			if o.CoveredBy != "" {
				errs = append(errs, fmt.Sprintf("options[%d].covered_by is only valid with discount=covered", i))
			}
		}
	}

	securityKeys := map[string]bool{}
	for i, s := range cfg.Security {
		if securityKeys[s.Key] {
			errs = append(errs, fmt.Sprintf("security[%d].key %q is duplicated", i, s.Key))
		}
		securityKeys[s.Key] = true
	}

	for i, c := range cfg.FeatureCategories {
		for j, f := range c.Features {
			for k := range f.Values {
				if !planKeys[k] {
					errs = append(errs, fmt.Sprintf("feature_categories[%d].features[%d].values has unknown plan %q", i, j, k))
				}
			}
		}
	}

	if len(errs) > 0 {
		return errors.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// fieldPath turns "RawCatalog.Plans[0].Price" into "Plans[0].Price".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

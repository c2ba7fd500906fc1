package catalog

import (
	"fmt"

	"github.com/pkg/errors"
)

// ReferenceKind names the table a lookup was made against.
type ReferenceKind string

const (
	KindPlan     ReferenceKind = "plan"
	KindModel    ReferenceKind = "model"
	KindOption   ReferenceKind = "option"
	KindSecurity ReferenceKind = "security"
)

// ReferenceNotFoundError is returned when a caller names a key the catalog does not hold.
type ReferenceNotFoundError struct {
	Kind ReferenceKind
	Key  string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.Key)
}

// AsReferenceNotFound unwraps err into a *ReferenceNotFoundError if it holds one.
func AsReferenceNotFound(err error) (*ReferenceNotFoundError, bool) {
	var rnf *ReferenceNotFoundError
	if errors.As(err, &rnf) {
		return rnf, true
	}
	return nil, false
}

func (c *Catalog) Plan(key string) (Plan, error) {
	for _, p := range c.Plans {
		if p.Key == key {
			return p, nil
		}
	}
	return Plan{}, &ReferenceNotFoundError{Kind: KindPlan, Key: key}
}

func (c *Catalog) Model(name string) (Model, error) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, nil
		}
	}
	return Model{}, &ReferenceNotFoundError{Kind: KindModel, Key: name}
}

func (c *Catalog) Option(key string) (Option, error) {
	for _, o := range c.Options {
		if o.Key == key {
			return o, nil
		}
	}
	return Option{}, &ReferenceNotFoundError{Kind: KindOption, Key: key}
}

func (c *Catalog) SecurityAddOn(key string) (SecurityAddOn, error) {
	for _, s := range c.Security {
		if s.Key == key {
			return s, nil
		}
	}
	return SecurityAddOn{}, &ReferenceNotFoundError{Kind: KindSecurity, Key: key}
}

// Provider hands out the current catalog snapshot.
type Provider interface {
	Catalog() *Catalog
}

type staticProvider struct{ c *Catalog }

func (s staticProvider) Catalog() *Catalog { return s.c }

// Static wraps a fixed snapshot as a Provider.
func Static(c *Catalog) Provider { return staticProvider{c: c} }

package catalog

import (
	"testing"

	"github.com/onsi/gomega"
)

func Test_ClassifyFeature(t *testing.T) {
	g := gomega.NewWithT(t)
	g.Expect(ClassifyFeature("Included")).To(gomega.Equal(StatusIncluded))
	g.Expect(ClassifyFeature("Not included")).To(gomega.Equal(StatusNotIncluded))
	g.Expect(ClassifyFeature("")).To(gomega.Equal(StatusNotIncluded))
	g.Expect(ClassifyFeature("300 per month")).To(gomega.Equal(StatusText))
}

func Test_Catalog_Compare(t *testing.T) {
	g := gomega.NewWithT(t)
	c, err := Build(validRaw())
	g.Expect(err).ToNot(gomega.HaveOccurred())

	cmp, err := c.Compare([]string{"business"})
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(cmp.Plans).To(gomega.HaveLen(1))
	g.Expect(cmp.Categories).To(gomega.HaveLen(1))
	g.Expect(cmp.Categories[0].Rows[0].Cells).To(gomega.Equal([]Cell{{Plan: "business", Value: "Included", Status: StatusIncluded}}))

	_, err = c.Compare([]string{"business", "team"})
	rnf, ok := AsReferenceNotFound(err)
	g.Expect(ok).To(gomega.BeTrue())
	g.Expect(rnf.Kind).To(gomega.Equal(KindPlan))
	g.Expect(rnf.Key).To(gomega.Equal("team"))
}

func Test_Catalog_FeatureValue(t *testing.T) {
	g := gomega.NewWithT(t)
	c := MustDefault()
	g.Expect(c.PremiumRequestsText("nope")).To(gomega.Equal("Not specified"))
	g.Expect(c.PremiumRequestsText("pro")).ToNot(gomega.Equal("Not specified"))
	g.Expect(c.FeatureValue("agents", "AGENT MODE", "business")).ToNot(gomega.Equal("Not specified"))
	g.Expect(c.FeatureValue("Agents", "Time travel", "business")).To(gomega.Equal("Not specified"))
}

func Test_Catalog_Lookup(t *testing.T) {
	c := MustDefault()
	tests := []struct {
		name   string
		lookup func() error
		kind   ReferenceKind
	}{
		{name: "plan", lookup: func() error { _, err := c.Plan("x"); return err }, kind: KindPlan},
		{name: "model", lookup: func() error { _, err := c.Model("x"); return err }, kind: KindModel},
		{name: "option", lookup: func() error { _, err := c.Option("x"); return err }, kind: KindOption},
		{name: "security", lookup: func() error { _, err := c.SecurityAddOn("x"); return err }, kind: KindSecurity},
	}
	for _, testcase := range tests {
		tt := testcase
		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			err := tt.lookup()
			rnf, ok := AsReferenceNotFound(err)
			g.Expect(ok).To(gomega.BeTrue())
			g.Expect(rnf.Kind).To(gomega.Equal(tt.kind))
			g.Expect(err.Error()).To(gomega.Equal(string(tt.kind) + ` "x" not found in catalog`))
		})
	}
}

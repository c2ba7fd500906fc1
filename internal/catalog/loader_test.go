package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/onsi/gomega"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func Test_Default(t *testing.T) {
	g := gomega.NewWithT(t)
	c, err := Default()
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(c.Currency).To(gomega.Equal("USD"))
	g.Expect(c.AdditionalRequestPrice.String()).To(gomega.Equal("0.04"))
	g.Expect(c.Plans).To(gomega.HaveLen(5))
	g.Expect(c.Models).ToNot(gomega.BeEmpty())

	base, err := c.Model("Base model (GPT-4.1)")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(base.Free()).To(gomega.BeTrue())

	cloud, err := c.Option("enterpriseCloud")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(cloud.Discount).To(gomega.Equal(DiscountCovered))
	g.Expect(cloud.CoveredBy).To(gomega.Equal("visualStudio"))

	ent, err := c.Plan("enterprise")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(ent.RequiresOrgPlan).To(gomega.Equal("enterprise"))
	g.Expect(ent.Scope).To(gomega.Equal(ScopeSeat))
}

func Test_Loader_EmbeddedOnly(t *testing.T) {
	g := gomega.NewWithT(t)
	l := NewLoader("")
	g.Expect(l.Catalog()).To(gomega.BeNil())
	g.Expect(l.Paths().Watched()).To(gomega.BeNil())

	c, err := l.Load()
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(l.Catalog()).To(gomega.BeIdenticalTo(c))
}

func Test_Loader_MissingCatalogFile(t *testing.T) {
	g := gomega.NewWithT(t)
	l := NewLoader(t.TempDir())
	c, err := l.Load()
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(c.Version).To(gomega.Equal(MustDefault().Version))
}

func Test_Loader_MergeOrder(t *testing.T) {
	g := gomega.NewWithT(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog.yaml"), `
version: "2025-07-01"
additional_request_price: 0.05
plans:
  - key: business
    name: Business
    price: 21
    allowance: 300
models:
  - name: Claude Opus 5
    multiplier: 20
`)
	writeFile(t, filepath.Join(dir, "overrides", "10-price.yaml"), `
plans:
  - key: business
    name: Business
    price: 25
    allowance: 500
`)
	writeFile(t, filepath.Join(dir, "overrides", "20-version.yaml"), `
version: "2025-07-02"
`)
	writeFile(t, filepath.Join(dir, "overrides", "ignored.txt"), `version: nope`)

	l := NewLoader(dir)
	g.Expect(l.Paths().Watched()).To(gomega.HaveLen(3))

	c, err := l.Load()
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(c.Version).To(gomega.Equal("2025-07-02"))
	g.Expect(c.AdditionalRequestPrice.String()).To(gomega.Equal("0.05"))
	g.Expect(c.Plans).To(gomega.HaveLen(5))

	biz, err := c.Plan("business")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(biz.Price.String()).To(gomega.Equal("25"))
	g.Expect(biz.Allowance).To(gomega.Equal(500))
	// replaced entries take defaults, not the embedded values
	g.Expect(biz.Scope).To(gomega.Equal(ScopeSeat))

	opus, err := c.Model("Claude Opus 5")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(opus.Multiplier.String()).To(gomega.Equal("20"))
	// untouched embedded entries survive
	_, err = c.Model("o3")
	g.Expect(err).ToNot(gomega.HaveOccurred())
}

func Test_Loader_ReloadKeepsPreviousOnError(t *testing.T) {
	g := gomega.NewWithT(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog.yaml"), `version: "v1"`)

	l := NewLoader(dir)
	first, err := l.Load()
	g.Expect(err).ToNot(gomega.HaveOccurred())

	writeFile(t, filepath.Join(dir, "catalog.yaml"), `
version: "v2"
options:
  - key: broken
    name: Broken
    price: 5
    discounted_price: 9
`)
	err = l.Reload()
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(err.Error()).To(gomega.ContainSubstring("discounted_price must be <= price"))
	g.Expect(l.Catalog()).To(gomega.BeIdenticalTo(first))

	writeFile(t, filepath.Join(dir, "catalog.yaml"), `version: "v3"`)
	g.Expect(l.Reload()).To(gomega.Succeed())
	g.Expect(l.Catalog().Version).To(gomega.Equal("v3"))
}

func Test_Loader_MalformedYAML(t *testing.T) {
	g := gomega.NewWithT(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog.yaml"), "plans: [unterminated")
	_, err := NewLoader(dir).Load()
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(err.Error()).To(gomega.ContainSubstring("catalog.yaml"))
}

func Test_mergeByKey(t *testing.T) {
	g := gomega.NewWithT(t)
	key := func(s string) string { return s[:1] }
	base := []string{"a1", "b1"}
	got := mergeByKey(base, []string{"b2", "c2"}, key)
	g.Expect(got).To(gomega.Equal([]string{"a1", "b2", "c2"}))
	g.Expect(base).To(gomega.Equal([]string{"a1", "b1"}))
	g.Expect(mergeByKey(base, nil, key)).To(gomega.Equal(base))
}

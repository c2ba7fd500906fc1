package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/onsi/gomega"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newLocalOptions(output string) *globalOptions {
	engine := pricing.NewEngine(catalog.Static(catalog.MustDefault()), pricing.Config{AllowanceScope: pricing.ScopePerSeat})
	return &globalOptions{output: output, calc: localCalculator{engine: engine}, closer: func() {}}
}

func Test_localCalculator_Models(t *testing.T) {
	g := gomega.NewWithT(t)
	reply, err := newLocalOptions("table").calc.Models(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(reply.Models).To(gomega.HaveLen(len(catalog.MustDefault().Models)))
}

func Test_plansCommand_PremiumRequestsColumn(t *testing.T) {
	g := gomega.NewWithT(t)
	opts := newLocalOptions("table")
	cmd := newPlansCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	g.Expect(cmd.Execute()).To(gomega.Succeed())
	g.Expect(out.String()).To(gomega.ContainSubstring("300 per user per month"))
	g.Expect(out.String()).To(gomega.ContainSubstring("1500 per month"))
}

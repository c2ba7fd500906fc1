package pricing

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func Test_FormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00"},
		{in: "4", want: "4.00"},
		{in: "756.6", want: "756.60"},
		{in: "1234.5", want: "1,234.50"},
		{in: "0.125", want: "0.13"},
		{in: "1000000", want: "1,000,000.00"},
		{in: "-1234.5", want: "-1,234.50"},
		{in: "12345678901234567.89", want: "12,345,678,901,234,567.89"},
	}
	for _, testcase := range tests {
		tt := testcase
		t.Run(tt.in, func(t *testing.T) {
			g := gomega.NewWithT(t)
			g.Expect(FormatAmount(decimal.RequireFromString(tt.in))).To(gomega.Equal(tt.want))
		})
	}
}

func Test_FormatUnits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1200", want: "1,200"},
		{in: "33.00", want: "33"},
		{in: "2.5", want: "2.5"},
		{in: "3.333", want: "3.33"},
		{in: "999", want: "999"},
		{in: "12345678901234567890", want: "12,345,678,901,234,567,890"},
	}
	for _, testcase := range tests {
		tt := testcase
		t.Run(tt.in, func(t *testing.T) {
			g := gomega.NewWithT(t)
			g.Expect(FormatUnits(decimal.RequireFromString(tt.in))).To(gomega.Equal(tt.want))
		})
	}
}

func Test_PremiumUsedText_Large(t *testing.T) {
	g := gomega.NewWithT(t)
	u := UsageCost{PremiumUsed: decimal.RequireFromString("450000000000000000000")}
	g.Expect(u.PremiumUsedText()).To(gomega.Equal("450,000,000,000,000,000,000"))
}

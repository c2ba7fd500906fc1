package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/onsi/gomega"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	engine := pricing.NewEngine(catalog.Static(catalog.MustDefault()), pricing.Config{AllowanceScope: pricing.ScopePerSeat})

	l := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, NewGRPCServer(engine), l) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return l.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return NewClient(conn)
}

func Test_Client_Usage(t *testing.T) {
	g := gomega.NewWithT(t)
	c := newTestClient(t)

	sel := pricing.NewSelection()
	sel.Plans = []string{"business"}
	sel.Models = []string{"GPT-4o", "o3"}
	sel.RequestCount = 10
	sel.DeveloperCount = 2

	reply, err := c.Usage(context.Background(), sel)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(reply.Currency).To(gomega.Equal("USD"))
	g.Expect(reply.Usage).To(gomega.HaveLen(1))
	g.Expect(reply.Usage[0].PremiumUsed.String()).To(gomega.Equal("120"))
	g.Expect(reply.Usage[0].Models).To(gomega.HaveLen(2))
}

func Test_Client_Licensing(t *testing.T) {
	g := gomega.NewWithT(t)
	c := newTestClient(t)

	sel := pricing.NewSelection()
	sel.Plans = []string{"enterprise"}
	sel.Billing = pricing.BillingAnnual
	sel = sel.ToggleOption("visualStudio").WithOptionLicenses("visualStudio", 5).
		ToggleOption("enterpriseCloud").WithOptionLicenses("enterpriseCloud", 8)

	reply, err := c.Licensing(context.Background(), sel)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(reply.Months).To(gomega.Equal(12))
	g.Expect(reply.GitHubPlan).To(gomega.Equal(pricing.OrgPlanEnterprise))
	g.Expect(reply.Options).To(gomega.HaveLen(2))
	// 39×12 + 0.01×5×12 + 21×3×12
	g.Expect(reply.Total.StringFixed(2)).To(gomega.Equal("1224.60"))
}

func Test_Client_PlansAndCompare(t *testing.T) {
	g := gomega.NewWithT(t)
	c := newTestClient(t)

	plans, err := c.Plans(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(plans.Version).To(gomega.Equal(catalog.MustDefault().Version))
	g.Expect(plans.Plans).To(gomega.HaveLen(5))
	g.Expect(plans.Allowances).To(gomega.HaveKeyWithValue("business", "300 per user per month"))
	g.Expect(plans.Allowances).To(gomega.HaveLen(5))

	models, err := c.Models(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(models.Version).To(gomega.Equal(plans.Version))
	g.Expect(models.Models).To(gomega.HaveLen(len(catalog.MustDefault().Models)))

	cmp, err := c.Compare(context.Background(), []string{"free", "pro_plus"})
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(cmp.Plans).To(gomega.HaveLen(2))
	g.Expect(cmp.Categories).ToNot(gomega.BeEmpty())
}

func Test_Client_NotFound(t *testing.T) {
	g := gomega.NewWithT(t)
	c := newTestClient(t)

	sel := pricing.NewSelection()
	sel.Plans = []string{"platinum"}
	_, err := c.Licensing(context.Background(), sel)
	g.Expect(status.Code(err)).To(gomega.Equal(codes.NotFound))

	_, err = c.Compare(context.Background(), []string{"platinum"})
	g.Expect(status.Code(err)).To(gomega.Equal(codes.NotFound))
}

func Test_fromStruct_Nil(t *testing.T) {
	g := gomega.NewWithT(t)
	sel := pricing.NewSelection()
	g.Expect(fromStruct(nil, &sel)).To(gomega.Succeed())
	g.Expect(sel.DeveloperCount.Int()).To(gomega.Equal(1))
}

func Test_Client_Recommend(t *testing.T) {
	g := gomega.NewWithT(t)
	c := newTestClient(t)

	sel := pricing.NewSelection()
	sel.Models = []string{"GPT-4o"}
	reply, err := c.Recommend(context.Background(), sel)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(reply.Best).To(gomega.Equal("free"))
	g.Expect(reply.Quotes).To(gomega.HaveLen(5))
}

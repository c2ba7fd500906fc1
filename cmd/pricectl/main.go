package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
	"github.com/xtding233/pricing-backend/internal/rpc"
)

// calculator is implemented by the local engine and by the gRPC client.
type calculator interface {
	Usage(ctx context.Context, sel pricing.Selection) (rpc.UsageReply, error)
	Licensing(ctx context.Context, sel pricing.Selection) (rpc.LicensingReply, error)
	Plans(ctx context.Context) (rpc.PlansReply, error)
	Models(ctx context.Context) (rpc.ModelsReply, error)
	Compare(ctx context.Context, planKeys []string) (catalog.Comparison, error)
	Recommend(ctx context.Context, sel pricing.Selection) (rpc.RecommendReply, error)
}

type localCalculator struct {
	engine *pricing.Engine
}

func (l localCalculator) Usage(_ context.Context, sel pricing.Selection) (rpc.UsageReply, error) {
	u, err := l.engine.Usage(sel)
	return rpc.UsageReply{Currency: l.engine.Catalog().Currency, Usage: u}, err
}

func (l localCalculator) Licensing(_ context.Context, sel pricing.Selection) (rpc.LicensingReply, error) {
	lb, err := l.engine.Licensing(sel)
	return rpc.LicensingReply{Currency: l.engine.Catalog().Currency, LicenseBreakdown: lb}, err
}

func (l localCalculator) Plans(_ context.Context) (rpc.PlansReply, error) {
	return rpc.NewPlansReply(l.engine.Catalog()), nil
}

func (l localCalculator) Models(_ context.Context) (rpc.ModelsReply, error) {
	return rpc.NewModelsReply(l.engine.Catalog()), nil
}

func (l localCalculator) Compare(_ context.Context, planKeys []string) (catalog.Comparison, error) {
	return l.engine.Compare(planKeys)
}

func (l localCalculator) Recommend(_ context.Context, sel pricing.Selection) (rpc.RecommendReply, error) {
	rec, err := l.engine.Recommend(sel)
	return rpc.RecommendReply{Currency: l.engine.Catalog().Currency, Recommendation: rec}, err
}

type globalOptions struct {
	catalogDir     string
	allowanceScope string
	server         string
	output         string

	calc   calculator
	closer func()
}

func (o *globalOptions) setup() error {
	o.closer = func() {}
	if o.server == "" {
		loader := catalog.NewLoader(o.catalogDir)
		if _, err := loader.Load(); err != nil {
			return errors.Wrap(err, "load catalog")
		}
		o.calc = localCalculator{engine: pricing.NewEngine(loader, pricing.Config{AllowanceScope: pricing.ScopePolicy(o.allowanceScope)})}
		return nil
	}
	conn, err := grpc.NewClient(o.server, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return errors.Wrapf(err, "dial %s", o.server)
	}
	glog.V(1).Infof("using pricing server at %s", o.server)
	o.calc = rpc.NewClient(conn)
	o.closer = func() { _ = conn.Close() }
	return nil
}

func main() {
	_ = flag.CommandLine.Parse([]string{})
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Infof("Unable to set logtostderr to true")
	}

	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "pricectl",
		Short:         "Estimate subscription, seat and premium request costs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.closer()
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.catalogDir, "catalog-dir", "", "directory holding catalog.yaml and overrides/*.yaml")
	pf.StringVar(&opts.allowanceScope, "allowance-scope", string(pricing.ScopePerSeat), "allowance multiplication: seat, organization or plan")
	pf.StringVar(&opts.server, "server", "", "gRPC address of a pricing server; empty computes locally")
	pf.StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	pf.AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		newPlansCommand(opts),
		newModelsCommand(opts),
		newCompareCommand(opts),
		newUsageCommand(opts),
		newLicensingCommand(opts),
		newRecommendCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		glog.Fatalf("error running command: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"net"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/pricing-backend/internal/api"
	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/config"
	"github.com/xtding233/pricing-backend/internal/pricing"
	"github.com/xtding233/pricing-backend/internal/rpc"
)

func main() {
	// make glog believe the flags have been parsed, otherwise every line is
	// prefixed by a complaint about it
	_ = flag.CommandLine.Parse([]string{})
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Infof("Unable to set logtostderr to true")
	}

	if err := newServeCommand().Execute(); err != nil {
		glog.Fatalf("error running command: %v", err)
	}
}

func newServeCommand() *cobra.Command {
	cfg := config.NewConfig()
	var configFile string

	cmd := &cobra.Command{
		Use:   "pricing-server",
		Short: "Serve the pricing calculators over HTTP and gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := cfg.ReadFile(configFile, cmd.Flags()); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cfg.AddFlags(cmd.Flags())
	cmd.Flags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	loader := catalog.NewLoader(cfg.CatalogDir)
	c, err := loader.Load()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	glog.Infof("catalog version=%s plans=%d models=%d options=%d", c.Version, len(c.Plans), len(c.Models), len(c.Options))

	if cfg.CatalogDir != "" && cfg.WatchInterval > 0 {
		w := catalog.WatchLoader(loader, cfg.WatchInterval)
		w.Start()
		defer w.Stop()
	}

	engine := pricing.NewEngine(loader, cfg.EngineConfig())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.NewServer(cfg.HTTPAddr, engine).ListenAndServe(ctx)
	})
	if cfg.GRPCAddr != "" {
		l, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return errors.Wrapf(err, "listen %s", cfg.GRPCAddr)
		}
		g.Go(func() error {
			return rpc.Serve(ctx, rpc.NewGRPCServer(engine), l)
		})
	}
	return g.Wait()
}

package rpc

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

// UsageReply is the document returned by Usage.
type UsageReply struct {
	Currency string              `json:"currency"`
	Usage    []pricing.UsageCost `json:"usage"`
}

// LicensingReply is the document returned by Licensing.
type LicensingReply struct {
	Currency string `json:"currency"`
	pricing.LicenseBreakdown
}

// PlansReply is the document returned by Plans. Allowances holds each plan's
// premium request description keyed by plan.
type PlansReply struct {
	Version    string            `json:"version"`
	Plans      []catalog.Plan    `json:"plans"`
	Allowances map[string]string `json:"allowances"`
}

func NewPlansReply(c *catalog.Catalog) PlansReply {
	out := PlansReply{Version: c.Version, Plans: c.Plans, Allowances: make(map[string]string, len(c.Plans))}
	for _, p := range c.Plans {
		out.Allowances[p.Key] = c.PremiumRequestsText(p.Key)
	}
	return out
}

// ModelsReply is the document returned by Models.
type ModelsReply struct {
	Version string          `json:"version"`
	Models  []catalog.Model `json:"models"`
}

func NewModelsReply(c *catalog.Catalog) ModelsReply {
	return ModelsReply{Version: c.Version, Models: c.Models}
}

// RecommendReply is the document returned by Recommend.
type RecommendReply struct {
	Currency string `json:"currency"`
	pricing.Recommendation
}

// CompareRequest selects the plans to compare; empty means all.
type CompareRequest struct {
	Plans []string `json:"plans"`
}

type pricingServer struct {
	engine *pricing.Engine
}

// NewPricingServer serves engine over the PricingServer API.
func NewPricingServer(engine *pricing.Engine) PricingServer {
	return &pricingServer{engine: engine}
}

func (s *pricingServer) Usage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sel := pricing.NewSelection()
	if err := fromStruct(in, &sel); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode selection: %v", err)
	}
	usage, err := s.engine.Usage(sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(UsageReply{Currency: s.engine.Catalog().Currency, Usage: usage})
}

func (s *pricingServer) Licensing(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sel := pricing.NewSelection()
	if err := fromStruct(in, &sel); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode selection: %v", err)
	}
	lb, err := s.engine.Licensing(sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(LicensingReply{Currency: s.engine.Catalog().Currency, LicenseBreakdown: lb})
}

func (s *pricingServer) Plans(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(NewPlansReply(s.engine.Catalog()))
}

func (s *pricingServer) Models(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(NewModelsReply(s.engine.Catalog()))
}

func (s *pricingServer) Compare(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CompareRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode compare request: %v", err)
	}
	cmp, err := s.engine.Compare(req.Plans)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(cmp)
}

func (s *pricingServer) Recommend(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	sel := pricing.NewSelection()
	if err := fromStruct(in, &sel); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode selection: %v", err)
	}
	rec, err := s.engine.Recommend(sel)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(RecommendReply{Currency: s.engine.Catalog().Currency, Recommendation: rec})
}

func toStatus(err error) error {
	if _, ok := catalog.AsReferenceNotFound(err); ok {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// toStruct converts a JSON-encodable document into a Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

// fromStruct decodes a Struct into v through its JSON form. A nil Struct leaves v unchanged.
func fromStruct(in *structpb.Struct, v interface{}) error {
	if in == nil {
		return nil
	}
	b, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// logUnary logs each call at verbosity 1 and failures as errors.
func logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)
	if code == codes.Internal || code == codes.Unknown {
		glog.Errorf("grpc %s failed after %s: %v", info.FullMethod, time.Since(start), err)
	} else {
		glog.V(1).Infof("grpc %s code=%s took=%s", info.FullMethod, code, time.Since(start))
	}
	return resp, err
}

// NewGRPCServer returns a grpc.Server with the pricing service registered.
func NewGRPCServer(engine *pricing.Engine, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary))
	s := grpc.NewServer(opts...)
	RegisterPricingServer(s, NewPricingServer(engine))
	return s
}

// Serve runs s on l until ctx is done, then stops it gracefully.
func Serve(ctx context.Context, s *grpc.Server, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		glog.Infof("gRPC API listening on %s", l.Addr())
		errCh <- s.Serve(l)
	}()
	select {
	case err := <-errCh:
		return errors.Wrap(err, "grpc serve")
	case <-ctx.Done():
		s.GracefulStop()
		return nil
	}
}

package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/pricing-backend/internal/catalog"
	"github.com/xtding233/pricing-backend/internal/pricing"
)

// Client calls a remote pricing.v1.Pricing service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, req, reply interface{}) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out); err != nil {
		return err
	}
	return fromStruct(out, reply)
}

func (c *Client) Usage(ctx context.Context, sel pricing.Selection) (UsageReply, error) {
	var reply UsageReply
	err := c.invoke(ctx, methodUsage, sel, &reply)
	return reply, err
}

func (c *Client) Licensing(ctx context.Context, sel pricing.Selection) (LicensingReply, error) {
	var reply LicensingReply
	err := c.invoke(ctx, methodLicensing, sel, &reply)
	return reply, err
}

func (c *Client) Plans(ctx context.Context) (PlansReply, error) {
	var reply PlansReply
	err := c.invoke(ctx, methodPlans, struct{}{}, &reply)
	return reply, err
}

func (c *Client) Models(ctx context.Context) (ModelsReply, error) {
	var reply ModelsReply
	err := c.invoke(ctx, methodModels, struct{}{}, &reply)
	return reply, err
}

func (c *Client) Compare(ctx context.Context, planKeys []string) (catalog.Comparison, error) {
	var reply catalog.Comparison
	err := c.invoke(ctx, methodCompare, CompareRequest{Plans: planKeys}, &reply)
	return reply, err
}

func (c *Client) Recommend(ctx context.Context, sel pricing.Selection) (RecommendReply, error) {
	var reply RecommendReply
	err := c.invoke(ctx, methodRecommend, sel, &reply)
	return reply, err
}

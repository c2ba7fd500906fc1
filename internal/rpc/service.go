// Package rpc exposes the pricing engine over gRPC. Messages are
// google.protobuf.Struct values carrying the same JSON documents the HTTP API
// serves, so no generated code is needed.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "pricing.v1.Pricing"

const (
	methodUsage     = "/" + ServiceName + "/Usage"
	methodLicensing = "/" + ServiceName + "/Licensing"
	methodPlans     = "/" + ServiceName + "/Plans"
	methodModels    = "/" + ServiceName + "/Models"
	methodCompare   = "/" + ServiceName + "/Compare"
	methodRecommend = "/" + ServiceName + "/Recommend"
)

// PricingServer is the server API for the pricing.v1.Pricing service.
type PricingServer interface {
	Usage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Licensing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Plans(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Models(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Compare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Recommend(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPricingServer adds srv to s.
func RegisterPricingServer(s grpc.ServiceRegistrar, srv PricingServer) {
	s.RegisterService(&pricingServiceDesc, srv)
}

type unaryMethod func(PricingServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PricingServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PricingServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var pricingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Usage", Handler: unaryHandler(methodUsage, PricingServer.Usage)},
		{MethodName: "Licensing", Handler: unaryHandler(methodLicensing, PricingServer.Licensing)},
		{MethodName: "Plans", Handler: unaryHandler(methodPlans, PricingServer.Plans)},
		{MethodName: "Models", Handler: unaryHandler(methodModels, PricingServer.Models)},
		{MethodName: "Compare", Handler: unaryHandler(methodCompare, PricingServer.Compare)},
		{MethodName: "Recommend", Handler: unaryHandler(methodRecommend, PricingServer.Recommend)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/pricing.proto",
}

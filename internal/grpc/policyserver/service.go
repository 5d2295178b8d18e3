package policyserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "snake.policy.v1.PolicyService"

// Full method names
const (
	MethodAct      = "/" + ServiceName + "/Act"
	MethodEvaluate = "/" + ServiceName + "/Evaluate"
	MethodInfo     = "/" + ServiceName + "/Info"
)

// PolicyServiceServer is the server API. Requests and responses are
// google.protobuf.Struct documents so no generated code is needed.
type PolicyServiceServer interface {
	Act(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Info(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPolicyServiceServer registers srv on s
func RegisterPolicyServiceServer(s grpc.ServiceRegistrar, srv PolicyServiceServer) {
	s.RegisterService(&PolicyService_ServiceDesc, srv)
}

// PolicyService_ServiceDesc describes the service for grpc.Server
var PolicyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PolicyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Act", Handler: unaryHandler(MethodAct, PolicyServiceServer.Act)},
		{MethodName: "Evaluate", Handler: unaryHandler(MethodEvaluate, PolicyServiceServer.Evaluate)},
		{MethodName: "Info", Handler: unaryHandler(MethodInfo, PolicyServiceServer.Info)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "snake/policy/v1/policy.proto",
}

type unaryMethod func(PolicyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PolicyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PolicyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

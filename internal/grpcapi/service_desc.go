package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName            = "learnlog.v1.Interactions"
	ListInteractionsMethod = "/" + ServiceName + "/ListInteractions"
)

// InteractionsServer is the server API for learnlog.v1.Interactions.
//
//	service Interactions {
//	  rpc ListInteractions(google.protobuf.Struct) returns (google.protobuf.ListValue);
//	}
//
// The request carries an optional numeric "item_id"; the response holds one
// Struct per interaction.
type InteractionsServer interface {
	ListInteractions(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
}

func RegisterInteractionsServer(s grpc.ServiceRegistrar, srv InteractionsServer) {
	s.RegisterService(&interactionsServiceDesc, srv)
}

var interactionsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InteractionsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListInteractions",
			Handler:    listInteractionsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "learnlog/v1/interactions.proto",
}

func listInteractionsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InteractionsServer).ListInteractions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListInteractionsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InteractionsServer).ListInteractions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ListInteractions is the client-side call for learnlog.v1.Interactions.
func ListInteractions(ctx context.Context, cc grpc.ClientConnInterface, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := cc.Invoke(ctx, ListInteractionsMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

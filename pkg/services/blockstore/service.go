package blockstore

import (
	"context"

	iprotobuf "github.com/nspcc-dev/neofs-blockstore/internal/protobuf"
	"google.golang.org/grpc"
)

// ServiceName is a fully qualified name of the gRPC service.
const ServiceName = "fileservice.FileService"

const (
	methodWriteData = "/" + ServiceName + "/WriteData"
	methodReadData  = "/" + ServiceName + "/ReadData"
)

// FileServiceServer is the server API of the service.
type FileServiceServer interface {
	WriteData(context.Context, *WriteRequest) (*WriteResponse, error)
	ReadData(context.Context, *ReadRequest) (*ReadResponse, error)
}

// Codec returns gRPC codec which must be forced on both server and client
// side: messages of this package have no generated descriptors.
func Codec() iprotobuf.Codec {
	return iprotobuf.Codec{}
}

// ServerOption returns gRPC server option forcing the service codec.
func ServerOption() grpc.ServerOption {
	return grpc.ForceServerCodec(Codec())
}

// DialOption returns gRPC dial option forcing the service codec for all calls.
func DialOption() grpc.DialOption {
	return grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec()))
}

// RegisterFileServiceServer registers the service implementation on the
// gRPC server. The server must be created with ServerOption.
func RegisterFileServiceServer(s grpc.ServiceRegistrar, srv FileServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func writeDataHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).WriteData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: methodWriteData,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FileServiceServer).WriteData(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func readDataHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).ReadData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: methodReadData,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FileServiceServer).ReadData(ctx, req.(*ReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "WriteData",
			Handler:    writeDataHandler,
		},
		{
			MethodName: "ReadData",
			Handler:    readDataHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fileservice.proto",
}

// Client is a client of the service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps the connection. The connection must be established with
// DialOption, otherwise Codec must be forced per call.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WriteData sends WriteRequest.
func (c *Client) WriteData(ctx context.Context, req *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error) {
	resp := new(WriteResponse)
	err := c.cc.Invoke(ctx, methodWriteData, req, resp, opts...)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ReadData sends ReadRequest.
func (c *Client) ReadData(ctx context.Context, req *ReadRequest, opts ...grpc.CallOption) (*ReadResponse, error) {
	resp := new(ReadResponse)
	err := c.cc.Invoke(ctx, methodReadData, req, resp, opts...)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

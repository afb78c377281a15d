package protobuf

import (
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/encoding/proto"
)

// Message is a manually encoded Protocol Buffers message.
type Message interface {
	MarshalProtobuf() []byte
	UnmarshalProtobuf([]byte) error
}

// Codec is a gRPC codec for Message types. Other messages are processed by
// the standard gRPC proto codec, so Codec may be forced for the whole server
// including generated services like health checks.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(Message); ok {
		return m.MarshalProtobuf(), nil
	}
	return encoding.GetCodec(proto.Name).Marshal(v)
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(Message); ok {
		return m.UnmarshalProtobuf(data)
	}
	return encoding.GetCodec(proto.Name).Unmarshal(data, v)
}

// Name implements encoding.Codec. The name matches the standard codec so
// that content subtype of requests remains default.
func (Codec) Name() string {
	return proto.Name
}

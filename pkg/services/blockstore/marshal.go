package blockstore

import (
	"fmt"

	iprotobuf "github.com/nspcc-dev/neofs-blockstore/internal/protobuf"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendUint64(b []byte, num protowire.Number, u uint64) []byte {
	if u == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, u)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func sizeString(num protowire.Number, s string) int {
	if s == "" {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeBytes(len(s))
}

func sizeUint64(num protowire.Number, u uint64) int {
	if u == 0 {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeVarint(u)
}

func sizeBool(num protowire.Number, v bool) int {
	if !v {
		return 0
	}
	return protowire.SizeTag(num) + 1
}

// fieldHandler processes field with preread number and type at the beginning
// of buf. Returns number of bytes read, 0 if the field is unknown.
type fieldHandler func(buf []byte, num protowire.Number, typ protowire.Type) (int, error)

// unmarshal iterates over message fields. Later occurrences of a field
// override earlier ones, unknown fields are skipped.
func unmarshal(b []byte, handle fieldHandler) error {
	for off := 0; off < len(b); {
		num, typ, n, err := iprotobuf.ParseTag(b[off:])
		if err != nil {
			return fmt.Errorf("parse tag at offset %d: %w", off, err)
		}
		off += n

		n, err = handle(b[off:], num, typ)
		if err != nil {
			return err
		}
		if n == 0 {
			n, err = iprotobuf.SkipField(b[off:], num, typ)
			if err != nil {
				return err
			}
		}
		off += n
	}

	return nil
}

// MarshalProtobuf encodes the request into Protocol Buffers.
func (x *WriteRequest) MarshalProtobuf() []byte {
	b := make([]byte, 0, sizeString(fieldReqID, x.RequestID)+
		protowire.SizeTag(fieldWriteReqData)+protowire.SizeBytes(len(x.Data)))
	b = appendString(b, fieldReqID, x.RequestID)
	return appendBytes(b, fieldWriteReqData, x.Data)
}

// UnmarshalProtobuf decodes the request from Protocol Buffers. Data shares
// memory with b.
func (x *WriteRequest) UnmarshalProtobuf(b []byte) error {
	*x = WriteRequest{}
	return unmarshal(b, func(buf []byte, num protowire.Number, typ protowire.Type) (int, error) {
		switch num {
		case fieldReqID:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.RequestID = string(v)
			return n, err
		case fieldWriteReqData:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.Data = v
			return n, err
		}
		return 0, nil
	})
}

// MarshalProtobuf encodes the response into Protocol Buffers.
func (x *WriteResponse) MarshalProtobuf() []byte {
	b := make([]byte, 0, sizeString(fieldReqID, x.RequestID)+
		sizeUint64(fieldWriteRespOffset, x.Offset)+
		sizeBool(fieldWriteRespSuccess, x.Success)+
		sizeString(fieldWriteRespError, x.ErrorMessage))
	b = appendString(b, fieldReqID, x.RequestID)
	b = appendUint64(b, fieldWriteRespOffset, x.Offset)
	b = appendBool(b, fieldWriteRespSuccess, x.Success)
	return appendString(b, fieldWriteRespError, x.ErrorMessage)
}

// UnmarshalProtobuf decodes the response from Protocol Buffers.
func (x *WriteResponse) UnmarshalProtobuf(b []byte) error {
	*x = WriteResponse{}
	return unmarshal(b, func(buf []byte, num protowire.Number, typ protowire.Type) (int, error) {
		switch num {
		case fieldReqID:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.RequestID = string(v)
			return n, err
		case fieldWriteRespOffset:
			u, n, err := iprotobuf.ParseUint64Field(buf, num, typ)
			x.Offset = u
			return n, err
		case fieldWriteRespSuccess:
			v, n, err := iprotobuf.ParseBoolField(buf, num, typ)
			x.Success = v
			return n, err
		case fieldWriteRespError:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.ErrorMessage = string(v)
			return n, err
		}
		return 0, nil
	})
}

// MarshalProtobuf encodes the request into Protocol Buffers.
func (x *ReadRequest) MarshalProtobuf() []byte {
	return appendString(make([]byte, 0, sizeString(fieldReqID, x.RequestID)), fieldReqID, x.RequestID)
}

// UnmarshalProtobuf decodes the request from Protocol Buffers.
func (x *ReadRequest) UnmarshalProtobuf(b []byte) error {
	*x = ReadRequest{}
	return unmarshal(b, func(buf []byte, num protowire.Number, typ protowire.Type) (int, error) {
		if num == fieldReqID {
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.RequestID = string(v)
			return n, err
		}
		return 0, nil
	})
}

// MarshalProtobuf encodes the response into Protocol Buffers.
func (x *ReadResponse) MarshalProtobuf() []byte {
	b := make([]byte, 0, sizeString(fieldReqID, x.RequestID)+
		protowire.SizeTag(fieldReadRespData)+protowire.SizeBytes(len(x.Data))+
		sizeBool(fieldReadRespSuccess, x.Success)+
		sizeString(fieldReadRespError, x.ErrorMessage))
	b = appendString(b, fieldReqID, x.RequestID)
	b = appendBytes(b, fieldReadRespData, x.Data)
	b = appendBool(b, fieldReadRespSuccess, x.Success)
	return appendString(b, fieldReadRespError, x.ErrorMessage)
}

// UnmarshalProtobuf decodes the response from Protocol Buffers. Data shares
// memory with b.
func (x *ReadResponse) UnmarshalProtobuf(b []byte) error {
	*x = ReadResponse{}
	return unmarshal(b, func(buf []byte, num protowire.Number, typ protowire.Type) (int, error) {
		switch num {
		case fieldReqID:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.RequestID = string(v)
			return n, err
		case fieldReadRespData:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.Data = v
			return n, err
		case fieldReadRespSuccess:
			v, n, err := iprotobuf.ParseBoolField(buf, num, typ)
			x.Success = v
			return n, err
		case fieldReadRespError:
			v, n, err := iprotobuf.ParseBytesField(buf, num, typ)
			x.ErrorMessage = string(v)
			return n, err
		}
		return 0, nil
	})
}

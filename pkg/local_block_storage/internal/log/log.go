package storagelog

import (
	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "local block storage operation"

// Write writes message about storage engine's operation to logger.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Info(headMsg, fields...)
}

// RequestIDField returns logger's field for the payload identifier.
func RequestIDField(id string) zap.Field {
	return zap.String("request_id", id)
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// OffsetField returns logger's field for the payload position in the file.
func OffsetField(off uint64) zap.Field {
	return zap.Uint64("offset", off)
}

// SizeField returns logger's field for the payload length.
func SizeField(size uint64) zap.Field {
	return zap.Uint64("size", size)
}

// StorageTypeField returns logger's field for storage type.
func StorageTypeField(typ string) zap.Field {
	return zap.String("type", typ)
}

package protobuf

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

func newTruncatedBufferError(need, left int) error {
	return fmt.Errorf("unexpected end of buffer: need %d bytes, left %d", need, left)
}

func newUnknownFieldTypeError(typ protowire.Type) error {
	return fmt.Errorf("unknown field type %d", typ)
}

func wrapParseFieldError(num protowire.Number, typ protowire.Type, cause error) error {
	return fmt.Errorf("parse field (#%d,%v): %w", num, typ, cause)
}

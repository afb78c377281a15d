/*
Package protobuf provides helpers for manual Protocol Buffers encoding of
messages which do not have generated Go code.
*/
package protobuf

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fixed32Len = 4
	fixed64Len = 8
)

func checkFieldType(num protowire.Number, exp, got protowire.Type) error {
	if exp == got {
		return nil
	}
	return fmt.Errorf("wrong type of field #%d: expected %v, got %v", num, exp, got)
}

func checkFieldNumber(num protowire.Number) error {
	if !num.IsValid() {
		return fmt.Errorf("invalid number %d", num)
	}
	return nil
}

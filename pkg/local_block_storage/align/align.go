/*
Package align implements block alignment rules of the direct I/O data file.

Every payload stored in the volume occupies a whole number of BlockSize
blocks: the data is padded with zeroes on the right before it is written and
the padding is cut off after it is read back. An empty payload still takes one
block.
*/
package align

import (
	"fmt"

	"github.com/ncw/directio"
)

// BlockSize is a direct I/O transfer unit in bytes. Both file offsets and
// transfer lengths are multiples of it.
const BlockSize = 512

// Size returns on-disk footprint of the payload of l bytes, i.e. l rounded up
// to the BlockSize. Zero length payload takes exactly one block.
func Size(l uint64) uint64 {
	if l == 0 {
		return BlockSize
	}
	return Up(l)
}

// Up rounds n up to the nearest multiple of BlockSize. Unlike Size, Up(0) is 0.
func Up(n uint64) uint64 {
	return (n + BlockSize - 1) / BlockSize * BlockSize
}

// IsAligned checks whether n is a multiple of BlockSize.
func IsAligned(n uint64) bool {
	return n%BlockSize == 0
}

// Buffer allocates zeroed buffer of n bytes located at memory address suitable
// for direct I/O.
func Buffer(n uint64) []byte {
	return directio.AlignedBlock(int(n))
}

// Pad returns a copy of data in a memory-aligned buffer of Size(len(data))
// bytes. The tail past len(data) is zeroed.
func Pad(data []byte) []byte {
	buf := Buffer(Size(uint64(len(data))))
	copy(buf, data)
	return buf
}

// Trim cuts block padding off buf leaving the first l bytes. The result shares
// memory with buf. Trim panics if buf is shorter than l.
func Trim(buf []byte, l uint64) []byte {
	if uint64(len(buf)) < l {
		panic(fmt.Sprintf("buffer of %d bytes is shorter than %d", len(buf), l))
	}
	return buf[:l]
}

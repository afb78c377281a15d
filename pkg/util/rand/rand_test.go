package rand

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	require.Empty(t, Bytes(0))

	a, b := Bytes(64), Bytes(64)
	require.Len(t, a, 64)
	require.NotEqual(t, a, b)
}

func TestShuffle(t *testing.T) {
	s := make([]int, 100)
	for i := range s {
		s[i] = i
	}

	Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })

	seen := make(map[int]struct{}, len(s))
	for _, v := range s {
		seen[v] = struct{}{}
	}
	require.Len(t, seen, len(s))
}

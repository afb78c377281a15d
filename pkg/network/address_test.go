package network

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddress_FromString(t *testing.T) {
	for _, tc := range []struct {
		input string
		ma    string
		host  string
	}{
		{input: "[::1]:50051", ma: "/ip6/::1/tcp/50051", host: "[::1]:50051"},
		{input: "127.0.0.1:8080", ma: "/ip4/127.0.0.1/tcp/8080", host: "127.0.0.1:8080"},
		{input: "localhost:8080", ma: "/dns4/localhost/tcp/8080", host: "localhost:8080"},
		{input: ":8080", ma: "/ip4/0.0.0.0/tcp/8080", host: "0.0.0.0:8080"},
		{input: "/ip4/192.168.0.1/tcp/5000", ma: "/ip4/192.168.0.1/tcp/5000", host: "192.168.0.1:5000"},
		{input: "grpc://localhost:5000", ma: "/dns4/localhost/tcp/5000", host: "localhost:5000"},
	} {
		var a Address
		require.NoError(t, a.FromString(tc.input), tc.input)
		require.Equal(t, tc.ma, a.String(), tc.input)
		require.Equal(t, tc.host, a.HostAddr(), tc.input)
	}

	for _, s := range []string{"", "localhost", "/ip4/127.0.0.1", "/ip4/127.0.0.1/udp/5000", "http//host"} {
		var a Address
		require.Error(t, a.FromString(s), s)
	}
}

func TestListen(t *testing.T) {
	var a Address
	require.NoError(t, a.FromString("127.0.0.1:0"))

	lis, err := Listen(a)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lis.Close() })

	c, err := net.Dial("tcp", lis.Addr().String())
	require.NoError(t, err)
	require.NoError(t, c.Close())

	require.NoError(t, a.FromString("grpcs://127.0.0.1:0"))
	_, err = Listen(a)
	require.Error(t, err)
}

package network

import (
	"errors"
	"fmt"
	"net"

	manet "github.com/multiformats/go-multiaddr/net"
)

// Listen announces on the local network address. TLS addresses are not
// supported.
func Listen(addr Address) (net.Listener, error) {
	if addr.IsTLSEnabled() {
		return nil, errors.New("TLS endpoints are not supported")
	}

	mLis, err := manet.Listen(addr.ma)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	return manet.NetListener(mLis), nil
}

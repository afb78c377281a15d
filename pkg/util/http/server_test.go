package httputil_test

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httputil "github.com/nspcc-dev/neofs-blockstore/pkg/util/http"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestServer(t *testing.T) {
	addr := freeAddress(t)

	srv := httputil.New(httputil.HTTPSrvPrm{
		Address: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	}, httputil.WithShutdownTimeout(time.Second))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusTeapot
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown())
	require.NoError(t, <-errCh)
}

func TestNew(t *testing.T) {
	h := http.NotFoundHandler()

	require.Panics(t, func() { httputil.New(httputil.HTTPSrvPrm{Handler: h}) })
	require.Panics(t, func() { httputil.New(httputil.HTTPSrvPrm{Address: "localhost:0"}) })
	require.Panics(t, func() {
		httputil.New(httputil.HTTPSrvPrm{Address: "localhost:0", Handler: h}, httputil.WithShutdownTimeout(0))
	})
}

func TestHandler(t *testing.T) {
	h := httputil.Handler()

	for path, code := range map[string]int{
		"/debug/pprof/":        http.StatusOK,
		"/debug/pprof/cmdline": http.StatusOK,
		"/metrics":             http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, code, rec.Code, path)
	}
}

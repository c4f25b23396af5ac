package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/mazegate/client/core/contract"
	"github.com/weisyn/mazegate/client/core/transport"
	"github.com/weisyn/mazegate/client/core/transport/transporttest"
	"github.com/weisyn/mazegate/internal/api/http/middleware"
	apiconfig "github.com/weisyn/mazegate/internal/config/api"
	starknetconfig "github.com/weisyn/mazegate/internal/config/starknet"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/mazegate/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/mazegate/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, mutate func(*apiconfig.APIOptions)) (*Server, *transporttest.FakeNode) {
	t.Helper()

	node := transporttest.NewFakeNode(types.ChainSepolia)
	t.Cleanup(node.Close)

	api := apiconfig.New(&types.UserAPIConfig{HTTPPort: types.IntPtr(0)}).GetOptions()
	if mutate != nil {
		mutate(api)
	}

	snCfg, err := starknetconfig.New(&types.UserStarknetConfig{
		NodeURL:       types.StringPtr(node.URL()),
		SenderAddress: types.StringPtr("0x1234"),
		PrivateKey:    types.StringPtr("0x1"),
	})
	require.NoError(t, err)
	sn := snCfg.GetOptions()

	deployment, err := sn.Contract()
	require.NoError(t, err)

	pool := transport.NewClientPool(time.Second, nil)
	t.Cleanup(pool.Close)
	service := contract.NewContractService(contract.Config{Deployment: deployment, Chain: sn.ChainID},
		pool, hash.NewHashService(), signature.NewSignatureService())

	reg := prometheus.NewRegistry()
	s, err := New(Deps{
		API:        api,
		Starknet:   sn,
		Contract:   service,
		Registerer: reg,
		Gatherer:   reg,
	})
	require.NoError(t, err)
	return s, node
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_MissingDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestServer_Routes(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mazegate_api_requests_total")
}

func TestServer_CORS(t *testing.T) {
	s, _ := newTestServer(t, func(o *apiconfig.APIOptions) {
		o.HTTP.CORSOrigins = []string{"https://maze.example"}
	})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("Origin", "https://maze.example")
	rec := serve(s, req)
	assert.Equal(t, "https://maze.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = serve(s, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_MetricsDisabled(t *testing.T) {
	s, _ := newTestServer(t, func(o *apiconfig.APIOptions) {
		o.HTTP.EnableMetrics = false
	})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_WriteRateLimit(t *testing.T) {
	s, node := newTestServer(t, func(o *apiconfig.APIOptions) {
		o.HTTP.WriteRateLimit = 1
	})
	node.AddAccount(types.MustParseFelt("0x1234"), 0)

	for i := 0; i < middleware.MinBurst; i++ {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/move_forward", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/move_forward", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Len(t, node.Submitted(), middleware.MinBurst)
}

func TestServer_StartStop(t *testing.T) {
	s, _ := newTestServer(t, func(o *apiconfig.APIOptions) {
		o.HTTP.Host = "127.0.0.1"
		o.HTTP.Port = 0
	})

	require.NoError(t, s.Start())
	addr := s.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/health/live")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	_, err = http.Get("http://" + addr + "/health/live")
	assert.Error(t, err)
}

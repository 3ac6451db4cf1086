package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mobile-next/ghostcli/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{"12000", "http://localhost:12000"},
		{":12000", "http://localhost:12000"},
		{"0.0.0.0:13000", "http://0.0.0.0:13000"},
		{"example.com", "http://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.expected, ServerURL(tt.addr))
		})
	}
}

func listenAddr(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestKillServer_SendsShutdownWithToken(t *testing.T) {
	var received server.JSONRPCRequest
	var authorization string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc", r.URL.Path)
		authorization = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":{"status":"ok"},"id":1}`))
	}))
	defer srv.Close()

	require.NoError(t, KillServer(listenAddr(srv), "secret"))

	assert.Equal(t, "server.shutdown", received.Method)
	assert.Equal(t, "2.0", received.JSONRPC)
	assert.Equal(t, "Bearer secret", authorization)
}

func TestKillServer_AgainstServerHandler(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(server.Options{Token: "secret"}))
	defer srv.Close()

	err := KillServer(listenAddr(srv), "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = KillServer(listenAddr(srv), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, KillServer(listenAddr(srv), "secret"))
}

func TestClient_RemoteError(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(server.Options{}))
	defer srv.Close()

	client := NewClient(listenAddr(srv), "")
	_, err := client.Call("no_such_method", map[string]string{"a": "b"})

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, server.ErrCodeMethodNotFound, remote.Code)
	assert.Contains(t, err.Error(), "no_such_method")
}

func TestClient_IncrementsRequestIDs(t *testing.T) {
	var ids []float64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID float64 `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		ids = append(ids, req.ID)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":[],"id":1}`))
	}))
	defer srv.Close()

	client := NewClient(listenAddr(srv), "")
	for i := 0; i < 3; i++ {
		result, err := client.Call("sessions_list", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(result))
	}
	assert.Equal(t, []float64{1, 2, 3}, ids)
}

func TestKillServer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := KillServer(listenAddr(srv), "")
	assert.ErrorContains(t, err, "500")
}

func TestKillServer_NotRunning(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := listenAddr(srv)
	srv.Close()

	err := KillServer(addr, "")
	assert.ErrorContains(t, err, "not running")
}

func TestIsChild(t *testing.T) {
	t.Setenv(DaemonEnvVar, "")
	assert.False(t, IsChild())

	t.Setenv(DaemonEnvVar, "1")
	assert.True(t, IsChild())
}

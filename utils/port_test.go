package utils

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPortAvailable(t *testing.T) {
	assert.True(t, IsPortAvailable("127.0.0.1", 0), "Port 0 should always be available (OS picks free port)")
}

func TestIsPortAvailable_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "Failed to create test listener")
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	assert.False(t, IsPortAvailable("127.0.0.1", addr.Port), "Port %d should be unavailable (in use)", addr.Port)
}

func TestIsPortAvailable_IPv6_NotSupported(t *testing.T) {
	// tcp4 only
	assert.False(t, IsPortAvailable("::1", 0))
}

func TestCheckListenAddr(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	busy := listener.Addr().(*net.TCPAddr).Port

	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"free port zero", "127.0.0.1:0", false},
		{"localhost port zero", "localhost:0", false},
		{"busy port", fmt.Sprintf("127.0.0.1:%d", busy), true},
		{"busy port via localhost", fmt.Sprintf("localhost:%d", busy), true},
		{"missing port", "127.0.0.1", true},
		{"non numeric port", "127.0.0.1:http", true},
		{"port out of range", "127.0.0.1:70000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckListenAddr(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

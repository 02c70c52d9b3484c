package cosmos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGrpcTarget(t *testing.T) {
	t.Run("explicit port is kept", func(t *testing.T) {
		target, _, err := grpcTarget("http://localhost:9090")
		require.NoError(t, err)
		require.Equal(t, "localhost:9090", target)
	})

	t.Run("http defaults to port 80", func(t *testing.T) {
		target, _, err := grpcTarget("http://node.example.com")
		require.NoError(t, err)
		require.Equal(t, "node.example.com:80", target)
	})

	t.Run("https defaults to port 443", func(t *testing.T) {
		target, _, err := grpcTarget("https://node.example.com")
		require.NoError(t, err)
		require.Equal(t, "node.example.com:443", target)
	})

	t.Run("ipv6 host is bracketed", func(t *testing.T) {
		target, _, err := grpcTarget("http://[::1]:9090")
		require.NoError(t, err)
		require.Equal(t, "[::1]:9090", target)
	})
}

func TestContactAccessors(t *testing.T) {
	contact := NewContactWithConn("http://localhost:9090", "gravity", time.Second, nil)

	require.Equal(t, "http://localhost:9090", contact.URL())
	require.Equal(t, "gravity", contact.AddressPrefix())
	require.Equal(t, time.Second, contact.Timeout())
	require.Nil(t, contact.GrpcConn())
	require.NoError(t, contact.Close())
}

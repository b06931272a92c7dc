package db

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func databaseConfig(t *testing.T, address string) config.DatabaseConfig {
	host, port, err := net.SplitHostPort(address)
	require.NoError(t, err)
	portNumber, err := strconv.Atoi(port)
	require.NoError(t, err)
	return config.DatabaseConfig{
		Host: host,
		Port: portNumber,
		Pool: config.PoolConfig{Min: 0, Max: 1, AcquireTimeoutMillis: 1000, IdleTimeoutMillis: 1000},
	}
}

func TestDialDatabase(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	err = DialDatabase(context.Background(), databaseConfig(t, listener.Addr().String()))

	assert.NoError(t, err)
}

func TestDialDatabaseUnreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	err = DialDatabase(context.Background(), databaseConfig(t, address))

	assert.ErrorContains(t, err, "is not reachable")
}

package db

import (
	"context"
	"fmt"
	"net"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
)

// DialDatabase checks that the database server accepts TCP connections within the acquire
// timeout of the pool. It does not authenticate.
func DialDatabase(ctx context.Context, databaseConfig config.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(ctx, databaseConfig.Pool.AcquireTimeout())
	defer cancel()
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", databaseConfig.Address())
	if err != nil {
		return fmt.Errorf("database at %s is not reachable: %w", databaseConfig.Address(), err)
	}
	return conn.Close()
}

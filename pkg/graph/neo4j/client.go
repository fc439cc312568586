// Package neo4j adapts the bolt driver to the graph.Store contract. The
// driver is created once per process; every Run opens a fresh read session
// scoped to that single call and closes it on all exit paths.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/procurewatch/backend/pkg/graph"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
)

// Config carries the connection settings for the graph store. It is built by
// the caller (internal/server) from the environment; the adapter never reads
// ambient configuration itself.
type Config struct {
	URI            string
	Username       string
	Password       string
	Database       string
	ConnectTimeout time.Duration
}

// Client implements graph.Store against a Neo4j instance.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewClient connects to the store and verifies connectivity up front, so an
// unreachable or misconfigured store fails at startup instead of on the first
// dashboard request.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *config.Config) {
			if cfg.ConnectTimeout > 0 {
				c.SocketConnectTimeout = cfg.ConnectTimeout
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graph.ErrConnection, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: %v", graph.ErrConnection, err)
	}

	return &Client{
		driver:   driver,
		database: cfg.Database,
	}, nil
}

// Run executes one parameterized read query in its own session and returns
// the fully materialized, coerced rows. The session is closed exactly once
// whether the query succeeds, returns nothing, or fails mid-stream.
func (c *Client) Run(
	ctx context.Context,
	query string,
	params map[string]any,
) ([]graph.Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, classify(err)
	}

	records := make([]graph.Record, 0)
	for result.Next(ctx) {
		rec := result.Record()
		row := make(graph.Record, len(rec.Keys))
		for i, key := range rec.Keys {
			row[key] = coerceValue(rec.Values[i])
		}
		records = append(records, row)
	}
	if err := result.Err(); err != nil {
		return nil, classify(err)
	}

	return records, nil
}

// Close releases the underlying driver and its connection pool.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func classify(err error) error {
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", graph.ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", graph.ErrQuery, err)
}

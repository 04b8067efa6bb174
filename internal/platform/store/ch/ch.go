// Package ch provides a clickhouse client over clickhouse-go's native protocol
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	// URL is a clickhouse DSN, e.g. clickhouse://default:@localhost:9000/default?dial_timeout=5s
	URL string

	// Role and Tag are reported to the server as client info products
	Role string
	Tag  string

	MaxOpenConns int
	PingTimeout  time.Duration // default 5s
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// batch is the part of driver.Batch an insert needs
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// conn is the part of driver.Conn the client needs
type conn interface {
	PrepareBatch(ctx context.Context, query string) (batch, error)
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// driverConn narrows a driver.Conn to conn
type driverConn struct{ c driver.Conn }

func (d driverConn) PrepareBatch(ctx context.Context, query string) (batch, error) {
	return d.c.PrepareBatch(ctx, query)
}

func (d driverConn) Exec(ctx context.Context, query string, args ...any) error {
	return d.c.Exec(ctx, query, args...)
}

func (d driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return d.c.Query(ctx, query, args...)
}

func (d driverConn) Ping(ctx context.Context) error { return d.c.Ping(ctx) }
func (d driverConn) Close() error                   { return d.c.Close() }

// CH is a clickhouse client with an optional statement tracer
type CH struct {
	conn   conn
	Tracer QueryTracer
}

// seams
var (
	openConn = func(opts *clickhouse.Options) (conn, error) {
		c, err := clickhouse.Open(opts)
		if err != nil {
			return nil, err
		}
		return driverConn{c: c}, nil
	}
)

// Options parses cfg into clickhouse.Options with client info applied
func Options(cfg Config) (*clickhouse.Options, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty DSN")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if cfg.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.MaxOpenConns
	}
	return opts, nil
}

// Open dials clickhouse and verifies the connection with a ping
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*CH, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	c, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := c.Ping(pctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}

	return &CH{conn: c, Tracer: tracer}, nil
}

// InsertQuery renders the batch insert statement for table and columns
func InsertQuery(table string, columns []string) string {
	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ")"
}

// Insert appends rows to a single batch and sends it once.
// Any append or send failure aborts the batch; nothing is retried
func (c *CH) Insert(ctx context.Context, table string, columns []string, rows [][]any) (err error) {
	if len(columns) == 0 {
		return errors.New("ch: insert without columns")
	}
	q := InsertQuery(table, columns)
	start := time.Now()
	defer func() { c.emit(ctx, q, len(rows), start, err) }()

	b, err := c.conn.PrepareBatch(ctx, q)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			_ = b.Abort()
			return fmt.Errorf("ch: row %d has %d values for %d columns", i, len(row), len(columns))
		}
		if err = b.Append(row...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append row %d: %w", i, err)
		}
	}
	if err = b.Send(); err != nil {
		_ = b.Abort()
		return err
	}
	return nil
}

// Exec runs a statement that returns no rows (DDL, mutations)
func (c *CH) Exec(ctx context.Context, sql string, args ...any) (err error) {
	start := time.Now()
	defer func() { c.emit(ctx, sql, 0, start, err) }()
	return c.conn.Exec(ctx, sql, args...)
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (rows Rows, err error) {
	start := time.Now()
	defer func() { c.emit(ctx, sql, 0, start, err) }()
	return c.conn.Query(ctx, sql, args...)
}

// Ping verifies the server answers
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil client")
	}
	return c.conn.Ping(ctx)
}

// Close closes resources
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *CH) emit(ctx context.Context, sql string, rows int, start time.Time, err error) {
	if c.Tracer == nil {
		return
	}
	c.Tracer.OnQuery(ctx, QueryEvent{
		SQL:       sql,
		Rows:      rows,
		ElapsedUS: time.Since(start).Microseconds(),
		Err:       err,
	})
}

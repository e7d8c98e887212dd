// Package store persists solved assignments as an opaque gob-encoded
// blob in Postgres, keyed by a batch UUID. The connection pool follows
// the teacher's pgxpool singleton-with-env-config pattern.
package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/transitsolve/internal/model"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Config holds database configuration.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MinConns int32
	MaxConns int32
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("STORE_DB_PORT", "5432"))
	minConns, _ := strconv.Atoi(getEnv("STORE_DB_MIN_CONNS", "2"))
	maxConns, _ := strconv.Atoi(getEnv("STORE_DB_MAX_CONNS", "10"))

	return &Config{
		Host:     getEnv("STORE_DB_HOST", "localhost"),
		Port:     port,
		Database: getEnv("STORE_DB_NAME", "transitsolve"),
		User:     getEnv("STORE_DB_USER", "postgres"),
		Password: getEnv("STORE_DB_PASSWORD", ""),
		SSLMode:  getEnv("STORE_DB_SSLMODE", "disable"),
		MinConns: int32(minConns),
		MaxConns: int32(maxConns),
	}
}

// GetPool returns the global connection pool (singleton pattern).
func GetPool() (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		pool, poolErr = initPool(LoadConfigFromEnv())
	})
	return pool, poolErr
}

// InitPoolWithConfig initializes the pool with a custom config, useful
// for pointing tests at a throwaway database.
func InitPoolWithConfig(config *Config) (*pgxpool.Pool, error) {
	return initPool(config)
}

func initPool(config *Config) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		config.Host, config.Port, config.Database, config.User, config.Password, config.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}
	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConns = config.MaxConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return p, nil
}

// Close closes the global connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// HealthCheck pings the database.
func HealthCheck(ctx context.Context) error {
	p, err := GetPool()
	if err != nil {
		return fmt.Errorf("store connection not initialized: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}
	return nil
}

// Encode produces the opaque binary blob persisted for a batch's
// assignments. It must round-trip through Decode.
func Encode(assignments model.Assignments) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(assignments); err != nil {
		return nil, fmt.Errorf("encode assignments: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(blob []byte) (model.Assignments, error) {
	var assignments model.Assignments
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&assignments); err != nil {
		return model.Assignments{}, fmt.Errorf("decode assignments: %w", err)
	}
	return assignments, nil
}

// Save persists a batch's assignments and its ingestion/solve
// diagnostics, returning the batch ID it was stored under. The
// diagnostics are inserted in a single pgx.Batch.
func Save(ctx context.Context, pool *pgxpool.Pool, assignments model.Assignments, diagnostics []model.Diagnostic) (uuid.UUID, error) {
	batchID := uuid.New()

	blob, err := Encode(assignments)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO solve_batch (id, assignments, created_at)
		VALUES ($1, $2, NOW())
	`, batchID, blob); err != nil {
		return uuid.Nil, fmt.Errorf("insert solve_batch: %w", err)
	}

	if len(diagnostics) > 0 {
		batch := &pgx.Batch{}
		for _, d := range diagnostics {
			batch.Queue(`
				INSERT INTO solve_diagnostic (batch_id, kind, subject, message)
				VALUES ($1, $2, $3, $4)
			`, batchID, d.Kind.String(), d.Subject, d.Message)
		}
		results := pool.SendBatch(ctx, batch)
		defer results.Close()
		for range diagnostics {
			if _, err := results.Exec(); err != nil {
				return batchID, fmt.Errorf("insert solve_diagnostic: %w", err)
			}
		}
	}

	return batchID, nil
}

// Load fetches and decodes a previously saved batch's assignments.
func Load(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) (model.Assignments, error) {
	var blob []byte
	err := pool.QueryRow(ctx, `SELECT assignments FROM solve_batch WHERE id = $1`, batchID).Scan(&blob)
	if err != nil {
		return model.Assignments{}, fmt.Errorf("load solve_batch: %w", err)
	}
	return Decode(blob)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

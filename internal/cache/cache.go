// Package cache caches solved batch assignments in Redis, keyed by a
// hash of the input that produced them, with a distributed lock
// guarding recomputation the way the teacher's route cache does.
package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/passbi/transitsolve/internal/model"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis configuration.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
	MutexTTL time.Duration
}

// LoadConfigFromEnv loads Redis configuration from environment variables.
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, _ := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	mutexTTL, _ := time.ParseDuration(getEnv("CACHE_MUTEX_TTL", "5s"))

	return &Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     port,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		TTL:      ttl,
		MutexTTL: mutexTTL,
	}
}

// GetClient returns the global Redis client (singleton pattern).
func GetClient() (*redis.Client, error) {
	clientOnce.Do(func() {
		config := LoadConfigFromEnv()

		opts := &redis.Options{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			Password:     config.Password,
			DB:           config.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}

		if getEnv("REDIS_TLS_ENABLED", "false") == "true" {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}

		client = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("failed to connect to Redis: %w", err)
		}
	})

	return client, clientErr
}

// Close closes the Redis client.
func Close() {
	if client != nil {
		client.Close()
	}
}

// BatchKey generates a deterministic cache key for a solve request:
// a hash of the group set plus the tuning knobs that affect its
// outcome, so identical requests hit the cache and differing budget
// steps or seeds do not collide.
func BatchKey(groupsFingerprint string, budgetSteps []int, seed int64) string {
	data := fmt.Sprintf("%s|%v|%d", groupsFingerprint, budgetSteps, seed)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("solve:%x", hash[:12])
}

// LockKey generates the mutex key guarding recomputation of a batch key.
func LockKey(batchKey string) string {
	return fmt.Sprintf("lock:%s", batchKey)
}

// GetAssignments retrieves cached assignments, or (nil, nil) on a
// cache miss.
func GetAssignments(ctx context.Context, key string) (*model.Assignments, error) {
	c, err := GetClient()
	if err != nil {
		return nil, err
	}

	data, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var assignments model.Assignments
	if err := json.Unmarshal(data, &assignments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached assignments: %w", err)
	}
	return &assignments, nil
}

// SetAssignments caches assignments under key for ttl.
func SetAssignments(ctx context.Context, key string, assignments *model.Assignments, ttl time.Duration) error {
	c, err := GetClient()
	if err != nil {
		return err
	}

	data, err := json.Marshal(assignments)
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}
	return c.Set(ctx, key, data, ttl).Err()
}

// AcquireLock attempts to acquire a distributed lock. It returns true
// if the lock was acquired, false if another solve is already in
// flight for this key.
func AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c, err := GetClient()
	if err != nil {
		return false, err
	}
	return c.SetNX(ctx, key, "1", ttl).Result()
}

// ReleaseLock releases a distributed lock.
func ReleaseLock(ctx context.Context, key string) error {
	c, err := GetClient()
	if err != nil {
		return err
	}
	return c.Del(ctx, key).Err()
}

// WaitForLock polls until a lock is released and then returns
// whatever its owner cached, avoiding a thundering herd of duplicate
// solves for the same batch key.
func WaitForLock(ctx context.Context, batchKey string, maxWait time.Duration) (*model.Assignments, error) {
	c, err := GetClient()
	if err != nil {
		return nil, err
	}

	lockKey := LockKey(batchKey)
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		exists, err := c.Exists(ctx, lockKey).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return GetAssignments(ctx, batchKey)
		}
		time.Sleep(100 * time.Millisecond)
	}

	return nil, fmt.Errorf("timeout waiting for lock")
}

// HealthCheck pings the Redis connection.
func HealthCheck(ctx context.Context) error {
	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("redis client not initialized: %w", err)
	}
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

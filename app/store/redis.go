package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/redis/go-redis/v9"
)

// Redis keeps each key under a common prefix in a redis server
type Redis struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedis connects to the redis server at addr, either a host:port pair or
// a redis:// url. The initial ping is retried with backoff to tolerate a
// server that is still coming up.
func NewRedis(ctx context.Context, addr, prefix string) (*Redis, error) {
	var clientOpts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url %q: %w", addr, err)
		}
		clientOpts = parsed
	} else {
		clientOpts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(clientOpts)
	rptr := repeater.New(&strategy.Backoff{Repeats: 5, Duration: 100 * time.Millisecond, Factor: 2, Jitter: true})
	err := rptr.Do(ctx, func() error { return client.Ping(ctx).Err() })
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w (also failed to close client: %v)", addr, err, closeErr)
		}
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Printf("[INFO] connected to redis at %s, prefix %q", addr, prefix)
	return &Redis{client: client, prefix: prefix, timeout: 5 * time.Second}, nil
}

// Get returns the value for the key, redis.Nil reported as absence
func (r *Redis) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores the value for the key without expiration
func (r *Redis) Set(key string, val []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, val, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes the key, no-op if absent
func (r *Redis) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the redis client
func (r *Redis) Close() error {
	return r.client.Close()
}

package kvstore

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	gactx "github.com/vnykmshr/goasync/pkg/common/context"
	gaerrors "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/common/validation"
	"github.com/vnykmshr/goasync/pkg/metrics"
)

// CommandRunner is the slice of a go-redis client the kvstore client
// needs. Any redis.UniversalClient satisfies it; tests substitute a fake
// built from redis.NewStringResult and friends.
type CommandRunner interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Config holds configuration options for creating a Client.
type Config struct {
	// Redis executes commands. Required.
	Redis CommandRunner

	// Timeout bounds each command round trip. Defaults to 1s.
	Timeout time.Duration

	// Logger receives command failure reports. If nil, logging is discarded.
	Logger *logrus.Logger

	// MetricsName labels this client's metrics. Defaults to "default".
	MetricsName string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// Client issues asynchronous get/set requests against a remote key-value
// service. Each request is a future: submit it to an executor (or embed it
// in a larger future) and it resolves to a Response once the command
// completes on a background goroutine.
type Client struct {
	rdb     CommandRunner
	timeout time.Duration
	log     *logrus.Logger

	name     string
	registry *metrics.Registry // nil when disabled
}

// New creates a client with default configuration.
func New(rdb CommandRunner) (*Client, error) {
	return NewWithConfig(Config{Redis: rdb})
}

// NewWithConfig creates a client with custom configuration.
func NewWithConfig(cfg Config) (*Client, error) {
	if err := validation.ValidateNotNil("kvstore", "redis", cfg.Redis); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	name := cfg.MetricsName
	if name == "" {
		name = "default"
	}

	c := &Client{
		rdb:     cfg.Redis,
		timeout: timeout,
		log:     log,
		name:    name,
	}

	c.registry = metrics.RegistryFor(cfg.Metrics)

	return c, nil
}

// Get issues an asynchronous read. The returned request resolves to a
// Response whose Value holds the stored string, or whose Err reports
// redis.Nil for a missing key.
func (c *Client) Get(key string) *Request {
	return c.newRequest("get", key, func(ctx context.Context) (string, error) {
		return c.rdb.Get(ctx, key).Result()
	})
}

// Set issues an asynchronous write with no expiration.
func (c *Client) Set(key, value string) *Request {
	return c.newRequest("set", key, func(ctx context.Context) (string, error) {
		return c.rdb.Set(ctx, key, value, 0).Result()
	})
}

func (c *Client) newRequest(command, key string, run func(ctx context.Context) (string, error)) *Request {
	r := &Request{
		client:  c,
		command: command,
		key:     key,
		run:     run,
	}
	if err := validation.ValidateNotEmpty("kvstore", "key", key); err != nil {
		// Resolve immediately; errors ride inside the response value.
		r.done = true
		r.resp = Response{Key: key, Err: err}
	}
	return r
}

// execute runs one command on a background goroutine and wakes the latest
// stored waker when the response is in.
func (c *Client) execute(r *Request) {
	start := time.Now()

	cctx, cancel := gactx.WithTimeoutOrCancel(context.Background(), c.timeout)
	defer cancel()

	value, err := r.run(cctx)
	if err != nil && gactx.IsTimedOut(cctx) {
		err = gaerrors.ErrTimeout
	}

	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.WithFields(logrus.Fields{
			"command": r.command,
			"key":     r.key,
			"error":   err,
		}).Warn("kvstore command failed")
	}

	if c.registry != nil {
		c.registry.KVRequests.WithLabelValues(c.name, r.command).Inc()
		c.registry.KVRequestDuration.WithLabelValues(c.name, r.command).Observe(time.Since(start).Seconds())
		if err != nil {
			c.registry.KVRequestErrors.WithLabelValues(c.name, r.command).Inc()
		}
	}

	r.resolve(Response{Key: r.key, Value: value, Err: err})
}

// IsNotFound reports whether a response error means the key did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

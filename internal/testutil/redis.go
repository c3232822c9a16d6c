//go:build integration

package testutil

import (
	"testing"

	"github.com/clonobrowser/annotator/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer is a disposable Redis server reached through a redis:// URL
type RedisContainer struct {
	Config *redis.Config
	Client *goredis.Client
}

// NewRedisContainer starts a Redis container and connects to it. The container
// is terminated when the test completes.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()

	ctx := t.Context()

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	cfg := &redis.Config{Address: url, Prefix: "annotator"}

	return &RedisContainer{
		Config: cfg,
		Client: connect(t, cfg),
	}
}

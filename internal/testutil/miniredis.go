package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/clonobrowser/annotator/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// CompiledKeyPrefix is the script cache prefix the server derives from the
// default Redis config
const CompiledKeyPrefix = "annotator:compiled:"

// NewMiniredis starts an in-memory Redis and returns it with a config pointing
// at it, as the server would load from its config file.
func NewMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Config) {
	t.Helper()

	mr := miniredis.RunT(t)

	return mr, &redis.Config{Address: mr.Addr(), Prefix: "annotator"}
}

// NewMiniredisClient starts an in-memory Redis and connects to it through the
// annotator's redis config. The client is closed when the test completes.
func NewMiniredisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, cfg := NewMiniredis(t)

	return mr, connect(t, cfg)
}

func connect(t *testing.T, cfg *redis.Config) *goredis.Client {
	t.Helper()

	client, err := redis.New(cfg)
	if err != nil {
		t.Fatalf("invalid redis config %q: %v", cfg.Address, err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
	})

	return client
}

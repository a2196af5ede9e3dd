package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	if _, ok := c.Get(ctx, "/docs/a"); ok {
		t.Fatal("Get() hit on empty cache")
	}

	html := []byte("<html>a</html>")
	c.Set(ctx, "/docs/a", html)
	html[1] = 'X'

	got, ok := c.Get(ctx, "/docs/a")
	if !ok || string(got) != "<html>a</html>" {
		t.Errorf("Get() = %q, %v; stored copy should be independent", got, ok)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set(ctx, "/", []byte("home"))
	now = now.Add(59 * time.Second)
	if _, ok := c.Get(ctx, "/"); !ok {
		t.Error("entry expired early")
	}
	now = now.Add(2 * time.Second)
	if _, ok := c.Get(ctx, "/"); ok {
		t.Error("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, expired entry should be dropped", c.Len())
	}
}

func TestMemoryCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}

	c.Set(ctx, "/a", []byte("a"))
	c.Set(ctx, "/b", []byte("b"))
	c.Invalidate(ctx, "/a")
	if _, ok := c.Get(ctx, "/a"); ok {
		t.Error("/a still cached after Invalidate")
	}
	if _, ok := c.Get(ctx, "/b"); !ok {
		t.Error("/b dropped by Invalidate(/a)")
	}

	c.InvalidateAll(ctx)
	if c.Len() != 0 {
		t.Errorf("Len() = %d after InvalidateAll", c.Len())
	}
}

func TestNop(t *testing.T) {
	var c PageCache = Nop{}
	c.Set(context.Background(), "/", []byte("x"))
	if _, ok := c.Get(context.Background(), "/"); ok {
		t.Error("Nop should never hit")
	}
}

// testRedisClient returns a client for DB 15. Skips if Redis is unavailable.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("A11YDOCS_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, pageKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(testRedisClient(t), time.Minute)

	if _, ok := c.Get(ctx, "/docs/a"); ok {
		t.Fatal("Get() hit before Set")
	}
	c.Set(ctx, "/docs/a", []byte("<p>a</p>"))
	got, ok := c.Get(ctx, "/docs/a")
	if !ok || string(got) != "<p>a</p>" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	c.Invalidate(ctx, "/docs/a")
	if _, ok := c.Get(ctx, "/docs/a"); ok {
		t.Error("hit after Invalidate")
	}
}

func TestRedisCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	client := testRedisClient(t)
	c := NewRedisCache(client, time.Minute)

	for _, p := range []string{"/", "/docs/a", "/docs/b"} {
		c.Set(ctx, p, []byte(p))
	}
	client.Set(ctx, "other:key", "kept", time.Minute)
	defer client.Del(ctx, "other:key")

	c.InvalidateAll(ctx)
	for _, p := range []string{"/", "/docs/a", "/docs/b"} {
		if _, ok := c.Get(ctx, p); ok {
			t.Errorf("%s still cached", p)
		}
	}
	if v, _ := client.Get(ctx, "other:key").Result(); v != "kept" {
		t.Error("InvalidateAll removed keys outside the page prefix")
	}
}

func TestConnectUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Connect(ctx, "127.0.0.1:1"); err == nil {
		t.Error("Connect() to a closed port should fail")
	}
}

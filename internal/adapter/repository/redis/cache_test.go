package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/cnabrecon/internal/domain"
)

// newRedis returns a client bound to an in-process server that is torn
// down with the test.
func newRedis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newRedis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "stats:0:occurrence", []byte(`{"ok":true}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "stats:0:occurrence")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"ok":true}` {
		t.Fatalf("unexpected value %s", val)
	}

	if !mr.Exists(keyNamespace + "cache:stats:0:occurrence") {
		t.Fatal("expected key to carry the cache prefix")
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, _ := newRedis(t)

	_, err := NewCache(client).Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheTTL(t *testing.T) {
	client, mr := newRedis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheSetNX(t *testing.T) {
	client, _ := newRedis(t)

	cache := NewCache(client)
	ctx := context.Background()

	set, err := cache.SetNX(ctx, "key", []byte("first"), time.Minute)
	if err != nil || !set {
		t.Fatalf("expected first SetNX to succeed, got set=%v err=%v", set, err)
	}

	set, err = cache.SetNX(ctx, "key", []byte("second"), time.Minute)
	if err != nil {
		t.Fatalf("SetNX failed: %v", err)
	}
	if set {
		t.Fatalf("expected second SetNX to fail because key exists")
	}
}

func TestCacheIncr(t *testing.T) {
	client, _ := newRedis(t)

	cache := NewCache(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := cache.Incr(ctx, "stats:generation")
		if err != nil {
			t.Fatalf("incr failed: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	val, err := cache.Get(ctx, "stats:generation")
	if err != nil || string(val) != "3" {
		t.Fatalf("expected generation 3, got %q (%v)", val, err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newRedis(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss for deleted key, got %v", err)
	}
}

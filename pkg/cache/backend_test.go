package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Backend tests run against live servers named by HYPERTOWER_TEST_REDIS and
// HYPERTOWER_TEST_MONGO, and are skipped otherwise.

func TestRedisCache(t *testing.T) {
	url := os.Getenv("HYPERTOWER_TEST_REDIS")
	if url == "" {
		t.Skip("HYPERTOWER_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("HYPERTOWER_TEST_MONGO")
	if uri == "" {
		t.Skip("HYPERTOWER_TEST_MONGO not set")
	}
	c, err := NewMongoCache(context.Background(), uri)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(new key) = %v, %v; want miss", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}
}

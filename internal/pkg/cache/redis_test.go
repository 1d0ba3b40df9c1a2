package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisCache_GenerateKey(t *testing.T) {
	c := NewRedisCache("127.0.0.1:0", "pizza-report")
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "pizza-report:abc:total_revenue:0", c.GenerateKey("abc", "total_revenue", "0"))
	assert.Equal(t, "pizza-report", c.GenerateKey())
}

func TestRedisCache_PingUnreachable(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "pizza-report")
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.ErrorContains(t, c.Ping(ctx), "cache: ping")
}

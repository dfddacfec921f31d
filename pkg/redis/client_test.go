package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailorline/storefront/pkg/config"
)

func TestIncrWithTTLStartsWindowOnce(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCommands()
	client := &Client{cmd: fake}
	key := client.RateLimitKey("ip:contact:10.0.0.1")

	for want := int64(1); want <= 3; want++ {
		got, err := client.IncrWithTTL(ctx, key, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	require.Len(t, fake.expires, 1)
	assert.Equal(t, expireCall{key: "tl:rate_limit:ip:contact:10.0.0.1", ttl: time.Hour}, fake.expires[0])
}

func TestCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &Client{cmd: newFakeCommands()}
	key := client.CartKey("cart")

	_, err := client.Get(ctx, key)
	assert.ErrorIs(t, err, redis.Nil)

	require.NoError(t, client.Set(ctx, key, `[{"id":1}]`, 0))
	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, got)

	require.NoError(t, client.Del(ctx, key))
	_, err = client.Get(ctx, key)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestSetNXClaimsOnce(t *testing.T) {
	ctx := context.Background()
	client := &Client{cmd: newFakeCommands()}
	key := client.IdempotencyKey("POST|/api/orders", "abc")

	ok, err := client.SetNX(ctx, key, "pending", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, key, "pending", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUninitializedClient(t *testing.T) {
	ctx := context.Background()
	client := &Client{}
	assert.ErrorIs(t, client.Ping(ctx), errNotInitialized)
	assert.ErrorIs(t, client.Set(ctx, "k", "v", 0), errNotInitialized)
	_, err := client.IncrWithTTL(ctx, "k", time.Second)
	assert.ErrorIs(t, err, errNotInitialized)
	assert.NoError(t, client.Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3, DialTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, time.Second, opts.DialTimeout)
}

func TestKeyspace(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "tl:idempotency:scope:id", client.IdempotencyKey("scope", "id"))
	assert.Equal(t, "tl:idempotency:id", client.IdempotencyKey(" ", "id"))
	assert.Equal(t, "tl:rate_limit:scope", client.RateLimitKey("scope"))
	assert.Equal(t, "tl:cart:cart", client.CartKey("cart"))

	staging := &Client{keyspace: "tl-staging"}
	assert.Equal(t, "tl-staging:cart:cart", staging.CartKey("cart"))
}

type expireCall struct {
	key string
	ttl time.Duration
}

type fakeCommands struct {
	data    map[string]string
	counts  map[string]int64
	expires []expireCall
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{data: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeCommands) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCommands) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommands) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommands) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCommands) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires = append(f.expires, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

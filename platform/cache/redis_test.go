package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redisCfg struct {
	url      string
	insecure bool
}

func (c redisCfg) GetRedisURL() string       { return c.url }
func (c redisCfg) GetRedisTLSInsecure() bool { return c.insecure }

func TestOptionsRequiresURL(t *testing.T) {
	_, err := Options(redisCfg{})
	require.Error(t, err)
}

func TestOptionsAppliesInsecureTLS(t *testing.T) {
	opt, err := Options(redisCfg{url: "rediss://:pw@cache.internal:6380/2", insecure: true})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opt.Addr)
	assert.Equal(t, 2, opt.DB)
	require.NotNil(t, opt.TLSConfig)
	assert.True(t, opt.TLSConfig.InsecureSkipVerify)
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	var out map[string]int
	assert.ErrorIs(t, GetJSON(ctx, client, "k", &out), ErrMiss)

	require.NoError(t, SetJSON(ctx, client, "k", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, GetJSON(ctx, client, "k", &out))
	assert.Equal(t, map[string]int{"a": 1}, out)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, GetJSON(ctx, client, "k", &out), ErrMiss)
}

func TestNewClientPings(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	client, err := NewClient(context.Background(), redisCfg{url: url})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), redisCfg{url: url})
	assert.Error(t, err)
}

func TestPingAdapter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ping := NewPingAdapter(client)
	assert.NoError(t, ping.Ping(context.Background()))

	mr.Close()
	assert.Error(t, ping.Ping(context.Background()))
}

package bookedslots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "booked_slots:meeting:2026-10-19", Key("meeting", "2026-10-19"))
}

func TestCache_Disabled(t *testing.T) {
	c := New(nil, 5*time.Second)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.Set(ctx, "meeting", "2026-10-19", []string{"9-10am"}))

	slots, found, err := c.Get(ctx, "meeting", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, slots)

	assert.NoError(t, c.Invalidate(ctx, "meeting", "2026-10-19"))
}

func TestEncodeDecode_EmptySet(t *testing.T) {
	data, err := encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	slots, err := decode(data)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)

	_, err = decode([]byte("{"))
	assert.ErrorIs(t, err, ErrCorruptedEntry)
}

// fakeRedis хранит значения в памяти; остальные команды Cmdable не используются
type fakeRedis struct {
	redis.Cmdable

	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			delete(f.ttls, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestCache_SetGetInvalidate(t *testing.T) {
	rdb := newFakeRedis()
	c := NewWithCmdable(rdb, 5*time.Second)
	ctx := context.Background()
	key := Key("meeting", "2026-10-19")

	require.True(t, c.Enabled())

	slots, found, err := c.Get(ctx, "meeting", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, slots)

	require.NoError(t, c.Set(ctx, "meeting", "2026-10-19", []string{"9-10am", "10-11am"}))
	assert.Equal(t, `["9-10am","10-11am"]`, rdb.values[key])
	assert.Equal(t, 5*time.Second, rdb.ttls[key])

	slots, found, err = c.Get(ctx, "meeting", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"9-10am", "10-11am"}, slots)

	// другая дата той же комнаты не затрагивается
	require.NoError(t, c.Set(ctx, "meeting", "2026-10-20", nil))

	require.NoError(t, c.Invalidate(ctx, "meeting", "2026-10-19"))
	assert.NotContains(t, rdb.values, key)

	_, found, err = c.Get(ctx, "meeting", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, found)

	slots, found, err = c.Get(ctx, "meeting", "2026-10-20")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{}, slots)
}

func TestCache_RedisErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("dial tcp: connection refused")
	c := NewWithCmdable(rdb, time.Second)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "kitchen", "2026-10-19")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.False(t, found)

	assert.ErrorIs(t, c.Set(ctx, "kitchen", "2026-10-19", []string{"1-2pm"}), ErrCacheUnavailable)
	assert.ErrorIs(t, c.Invalidate(ctx, "kitchen", "2026-10-19"), ErrCacheUnavailable)
}

func TestCache_CorruptedEntry(t *testing.T) {
	rdb := newFakeRedis()
	rdb.values[Key("locker", "2026-10-19")] = "not json"
	c := NewWithCmdable(rdb, time.Second)

	_, found, err := c.Get(context.Background(), "locker", "2026-10-19")
	assert.ErrorIs(t, err, ErrCorruptedEntry)
	assert.False(t, found)
}

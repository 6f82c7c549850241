package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.failErr != nil {
		return goredis.NewStringResult("", f.failErr)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	if f.failErr != nil {
		return goredis.NewStatusResult("", f.failErr)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return goredis.NewIntResult(n, f.failErr)
}

func TestStores(t *testing.T) {
	stores := map[string]func() domain.CacheStore{
		"redis":  func() domain.CacheStore { return NewRedisStore(newFakeRedis(), time.Hour) },
		"memory": func() domain.CacheStore { return NewMemoryStore(time.Hour) },
	}
	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore()

			_, ok, err := s.Get(ctx, domain.CacheKeyAnnouncement)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, domain.CacheKeyAnnouncement, "Last chance"))
			v, ok, err := s.Get(ctx, domain.CacheKeyAnnouncement)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "Last chance", v)

			_, ok, err = s.Get(ctx, domain.CacheKeyFeaturedSpeaker)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Delete(ctx, domain.CacheKeyAnnouncement))
			_, ok, err = s.Get(ctx, domain.CacheKeyAnnouncement)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Delete(ctx, domain.CacheKeyAnnouncement))
		})
	}
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, 30*time.Minute)
	require.NoError(t, s.Set(context.Background(), "K", "v"))
	assert.Equal(t, "v", rdb.values["conferencecentral:K"])
	assert.Equal(t, 30*time.Minute, rdb.ttls["conferencecentral:K"])
}

func TestRedisStore_WrapsErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failErr = errors.New("connection refused")
	s := NewRedisStore(rdb, time.Hour)

	_, _, err := s.Get(context.Background(), "K")
	assert.True(t, errors.Is(err, rdb.failErr))
	assert.True(t, errors.Is(s.Set(context.Background(), "K", "v"), rdb.failErr))
	assert.True(t, errors.Is(s.Delete(context.Background(), "K"), rdb.failErr))
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "K", "v"))
	assert.Eventually(t, func() bool {
		_, ok, _ := s.Get(ctx, "K")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

package session

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	orig := &Session{
		ID:            "abc",
		LastGenerated: &recipe.Record{Text: "Soup", Servings: 2},
		MealPlan:      recipe.MealPlan{"Monday": "Pasta"},
		History:       []ChatTurn{{Question: "q", Answer: "a"}},
	}

	c := orig.Clone()
	c.LastGenerated.Text = "Stew"
	c.MealPlan["Monday"] = "Rice"
	c.History[0].Answer = "changed"

	assert.Equal(t, "Soup", orig.LastGenerated.Text)
	assert.Equal(t, "Pasta", orig.MealPlan["Monday"])
	assert.Equal(t, "a", orig.History[0].Answer)
	assert.Nil(t, (*Session)(nil).Clone())
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := NewMemoryStore(time.Hour, 0, m)
	defer s.Close()

	sess, err := s.Create(ctx, "key-1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.HasAPIKey())
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-1", got.APIKey)

	got.LastGenerated = &recipe.Record{Text: "Curry", Servings: 4}
	got.MealPlan = recipe.MealPlan{"Monday": "Dal"}
	require.NoError(t, s.Save(ctx, got))

	again, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, again.LastGenerated)
	assert.Equal(t, "Curry", again.LastGenerated.Text)
	assert.Equal(t, "Dal", again.MealPlan["Monday"])

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
	assert.Equal(t, 0, s.Len())
	expected := `
# HELP active_sessions Sessions currently held by the in-memory session store
# TYPE active_sessions gauge
active_sessions 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "active_sessions"))
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0, nil)
	defer s.Close()

	sess, err := s.Create(ctx, "")
	require.NoError(t, err)
	assert.False(t, sess.HasAPIKey())

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	got.APIKey = "not saved"

	again, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, again.APIKey)
}

func TestMemoryStoreSaveUnknown(t *testing.T) {
	s := NewMemoryStore(time.Hour, 0, nil)
	defer s.Close()

	err := s.Save(context.Background(), &Session{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute, 0, nil)
	defer s.Close()

	clock := time.Now()
	s.now = func() time.Time { return clock }

	idle, err := s.Create(ctx, "")
	require.NoError(t, err)
	active, err := s.Create(ctx, "")
	require.NoError(t, err)

	clock = clock.Add(40 * time.Second)
	_, err = s.Get(ctx, active.ID)
	require.NoError(t, err)

	clock = clock.Add(30 * time.Second)
	_, err = s.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)

	_, err = s.Get(ctx, active.ID)
	assert.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, 1, s.cleanup())
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreBackgroundCleanup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10*time.Millisecond, 5*time.Millisecond, nil)
	defer s.Close()

	_, err := s.Create(ctx, "")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNewStoreBackends(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Backend: "memory", TTL: time.Hour}}
	st, err := NewStore(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)
	require.NoError(t, st.Close())

	cfg.Session.Backend = "etcd"
	_, err = NewStore(cfg, nil)
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis session tests")
	}

	ctx := context.Background()
	s, err := NewRedisStore(config.RedisConfig{Addr: addr, Prefix: "recipe-studio:test:"}, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	sess, err := s.Create(ctx, "key-1")
	require.NoError(t, err)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-1", got.APIKey)

	got.History = append(got.History, ChatTurn{Question: "salt?", Answer: "a pinch"})
	require.NoError(t, s.Save(ctx, got))

	again, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, again.History, 1)
	assert.Equal(t, "a pinch", again.History[0].Answer)

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)

	err = s.Save(ctx, &Session{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrSessionNotFound)
}

package session

import (
	"context"
	"sync"
	"time"

	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 行程內的工作階段存放，閒置超過 ttl 的項目由背景協程清除
type MemoryStore struct {
	mu      sync.RWMutex
	store   map[string]entry
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	session   *Session
	expiresAt time.Time
}

// NewMemoryStore 建立記憶體存放；cleanupInterval <= 0 時不啟動清理協程
func NewMemoryStore(ttl, cleanupInterval time.Duration, m *metrics.Metrics) *MemoryStore {
	s := &MemoryStore{
		store:   make(map[string]entry),
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go s.startCleanup(cleanupInterval)
	}

	common.LogInfo("工作階段存放已初始化",
		zap.String("backend", "memory"),
		zap.Duration("ttl", ttl),
		zap.Duration("cleanup_interval", cleanupInterval),
	)
	return s
}

// Create 建立新的工作階段
func (s *MemoryStore) Create(ctx context.Context, apiKey string) (*Session, error) {
	sess := newSession(apiKey)

	s.mu.Lock()
	s.store[sess.ID] = entry{session: sess.Clone(), expiresAt: s.now().Add(s.ttl)}
	n := len(s.store)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return sess, nil
}

// Get 取得工作階段並刷新閒置時間
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.store, id)
		s.metrics.SetActiveSessions(len(s.store))
		return nil, common.ErrSessionNotFound
	}

	e.session.LastSeen = now
	e.expiresAt = now.Add(s.ttl)
	s.store[id] = e
	return e.session.Clone(), nil
}

// Save 覆寫既有的工作階段
func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store[sess.ID]; !ok {
		return common.ErrSessionNotFound
	}
	now := s.now()
	c := sess.Clone()
	c.LastSeen = now
	s.store[sess.ID] = entry{session: c, expiresAt: now.Add(s.ttl)}
	return nil
}

// Delete 結束工作階段，不存在時不視為錯誤
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.store, id)
	n := len(s.store)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return nil
}

// Len 目前保存的工作階段數
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

func (s *MemoryStore) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

// cleanup 清除過期的工作階段
func (s *MemoryStore) cleanup() int {
	s.mu.Lock()
	now := s.now()
	count := 0
	for id, e := range s.store {
		if now.After(e.expiresAt) {
			delete(s.store, id)
			count++
		}
	}
	remaining := len(s.store)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(remaining)
	if count > 0 {
		common.LogInfo("Cleaned up expired sessions",
			zap.Int("count", count),
			zap.Int("remaining", remaining),
		)
	}
	return count
}

// Close 停止清理協程並清空
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	s.store = make(map[string]entry)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(0)
	common.LogInfo("工作階段存放已關閉")
	return nil
}

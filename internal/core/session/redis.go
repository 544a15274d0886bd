package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存工作階段，過期交給 key TTL
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 連線並確認 Redis 可用
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("工作階段存放已初始化",
		zap.String("backend", "redis"),
		zap.String("addr", cfg.Addr),
		zap.Duration("ttl", ttl),
	)

	return &RedisStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    ttl,
	}, nil
}

// Create 建立新的工作階段
func (s *RedisStore) Create(ctx context.Context, apiKey string) (*Session, error) {
	sess := newSession(apiKey)
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get 取得工作階段並延長 TTL
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, common.NewParseError("session "+id, err)
	}

	sess.LastSeen = time.Now()
	if err := s.client.Expire(ctx, s.key(id), s.ttl).Err(); err != nil {
		common.LogWarn("延長工作階段 TTL 失敗", zap.String("session_id", id), zap.Error(err))
	}
	return &sess, nil
}

// Save 覆寫既有的工作階段
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	n, err := s.client.Exists(ctx, s.key(sess.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if n == 0 {
		return common.ErrSessionNotFound
	}
	sess.LastSeen = time.Now()
	return s.write(ctx, sess)
}

// Delete 結束工作階段
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Package messaging은 Redis pub/sub 기반 메시지 발행을 제공합니다.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher 메시지 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Config Redis 연결 설정
type Config struct {
	// URL redis://[:password@]host:port/db 형식
	URL      string
	Password string
}

// redisPublisher Redis 발행자 구현체
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher는 Redis에 연결하고 발행자를 생성합니다.
func NewRedisPublisher(ctx context.Context, cfg Config) (Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("Redis URL 파싱 실패: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	client := redis.NewClient(opts)

	// Redis 연결 테스트
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return &redisPublisher{client: client}, nil
}

// Publish 메시지를 JSON으로 직렬화해 발행
func (r *redisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Close Redis 클라이언트 종료
func (r *redisPublisher) Close() error {
	return r.client.Close()
}

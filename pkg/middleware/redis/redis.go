package redis

import (
	// 外部依赖
	"context"
	"fmt"
	"log"
	"time"

	r "github.com/redis/go-redis/v9"
)

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var redisClient *r.Client

func InitRedis(ctx context.Context, conf *Redis) {
	redisClient = r.NewClient(&r.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("init redis fail err: %+v", err)
	}
}

func CloseRedis(_ context.Context) {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func GetClient() *r.Client {
	return redisClient
}

// SessionStore is the redis-backed token denylist: revocations survive
// process restarts, and several api replicas see the same logout.
type SessionStore struct {
	client *r.Client
}

func NewSessionStore() *SessionStore {
	return &SessionStore{client: redisClient}
}

func sessionKey(jti string) string {
	return "labstock:session:revoked:" + jti
}

func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(jti), "1", ttl).Err()
}

func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

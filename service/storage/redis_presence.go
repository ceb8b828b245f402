package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultPresenceTTL = 2 * time.Minute

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisPresence keeps dm:presence:<user> keys with a TTL; the value is a
// plain marker. A key that expires without an Offline call self-heals.
type RedisPresence struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPresence(ctx context.Context, c RedisConfig) (*RedisPresence, error) {
	rdb := redis.NewClient(&redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultPresenceTTL
	}
	return &RedisPresence{rdb: rdb, ttl: ttl}, nil
}

func presenceKey(userID int64) string {
	return "dm:presence:" + strconv.FormatInt(userID, 10)
}

func (p *RedisPresence) Online(ctx context.Context, userID int64) error {
	return p.rdb.Set(ctx, presenceKey(userID), "1", p.ttl).Err()
}

func (p *RedisPresence) Offline(ctx context.Context, userID int64) error {
	return p.rdb.Del(ctx, presenceKey(userID)).Err()
}

func (p *RedisPresence) IsOnline(ctx context.Context, userID int64) (bool, error) {
	_, err := p.rdb.Get(ctx, presenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

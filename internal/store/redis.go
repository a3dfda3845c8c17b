package store

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Host     string
	Port     int
	Password string
	DB       int
	Key      string
}

func (o RedisOptions) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(options RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:       options.Addr(),
		Password:   options.Password,
		DB:         options.DB,
		MaxRetries: -1,
	})

	return &RedisStore{
		client: client,
		key:    options.Key,
	}
}

func (s *RedisStore) Push(ctx context.Context, value string) error {
	err := s.client.LPush(ctx, s.key, value).Err()
	if err != nil {
		return fmt.Errorf("push to %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Range(ctx context.Context) ([]string, error) {
	values, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", s.key, err)
	}
	return values, nil
}

func (s *RedisStore) PushAndRange(ctx context.Context, value string) ([]string, error) {
	var values *redis.StringSliceCmd

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, value)
		values = pipe.LRange(ctx, s.key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("push and range %s: %w", s.key, err)
	}

	return values.Val(), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

package repositories

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/hearttiles/server/pkg/game/types"
)

const redisKeyPrefix = "room:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) LoadAll(ctx context.Context) ([]*types.Room, error) {
	var rooms []*types.Room
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get room %s: %v", iter.Val(), err)
		}
		room, err := DecodeRoom(data)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan rooms: %v", err)
	}
	return rooms, nil
}

func (s *RedisStore) Upsert(ctx context.Context, room *types.Room) error {
	data, err := EncodeRoom(room)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+room.Code, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set room: %v", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+code).Err(); err != nil {
		return fmt.Errorf("failed to delete room: %v", err)
	}
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	return s.client.Close()
}

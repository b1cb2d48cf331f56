package rediscart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"commerce-service/config"
)

// Store 购物车存 Redis：每个用户一个 hash，field 是商品 ID，value 是数量。
type Store struct {
	client *redis.Client
}

func NewStore(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func cartKey(userID int) string {
	return "cart:" + strconv.Itoa(userID)
}

func (s *Store) GetQuantities(ctx context.Context, userID int) (map[int]int, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall cart: %w", err)
	}

	quantities := make(map[int]int, len(fields))
	for field, value := range fields {
		productID, err := strconv.Atoi(field)
		if err != nil {
			continue // 跳过脏数据
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		quantities[productID] = qty
	}
	return quantities, nil
}

func (s *Store) GetQuantity(ctx context.Context, userID, productID int) (int, bool, error) {
	value, err := s.client.HGet(ctx, cartKey(userID), strconv.Itoa(productID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("hget cart item: %w", err)
	}
	qty, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse cart quantity: %w", err)
	}
	return qty, true, nil
}

func (s *Store) AddQuantity(ctx context.Context, userID, productID, quantity int) error {
	if err := s.client.HIncrBy(ctx, cartKey(userID), strconv.Itoa(productID), int64(quantity)).Err(); err != nil {
		return fmt.Errorf("hincrby cart item: %w", err)
	}
	return nil
}

func (s *Store) SetQuantity(ctx context.Context, userID, productID, quantity int) error {
	if err := s.client.HSet(ctx, cartKey(userID), strconv.Itoa(productID), quantity).Err(); err != nil {
		return fmt.Errorf("hset cart item: %w", err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, userID, productID int) error {
	if err := s.client.HDel(ctx, cartKey(userID), strconv.Itoa(productID)).Err(); err != nil {
		return fmt.Errorf("hdel cart item: %w", err)
	}
	return nil
}

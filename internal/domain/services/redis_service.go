package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bluemoon-fee-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// 缓存键前缀
const (
	cacheKeyFeeStatus = "fee_status:"
	cacheKeyDashboard = "dashboard_stats"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheFeeStatus(householdID uint, period string, statuses interface{}, expiration time.Duration) error
	GetFeeStatus(householdID uint, period string, dest interface{}) error
	InvalidateFeeStatus(householdID uint) error
	CacheDashboard(stats interface{}, expiration time.Duration) error
	GetDashboard(dest interface{}) error
	InvalidateDashboard() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 2 Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 4 CacheFeeStatus 缓存某住户某周期的对账结果
func (s *RedisService) CacheFeeStatus(householdID uint, period string, statuses interface{}, expiration time.Duration) error {
	key := fmt.Sprintf("%s%d:%s", cacheKeyFeeStatus, householdID, period)
	return s.Set(key, statuses, expiration)
}

// 5 GetFeeStatus 读取某住户某周期的对账结果缓存
func (s *RedisService) GetFeeStatus(householdID uint, period string, dest interface{}) error {
	key := fmt.Sprintf("%s%d:%s", cacheKeyFeeStatus, householdID, period)
	return s.Get(key, dest)
}

// 6 InvalidateFeeStatus 清除某住户的所有对账缓存（缴费写入后调用）
func (s *RedisService) InvalidateFeeStatus(householdID uint) error {
	pattern := fmt.Sprintf("%s%d:*", cacheKeyFeeStatus, householdID)
	keys, err := s.Client.Keys(s.Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}

// 7 CacheDashboard 缓存仪表盘统计数据
func (s *RedisService) CacheDashboard(stats interface{}, expiration time.Duration) error {
	return s.Set(cacheKeyDashboard, stats, expiration)
}

// 8 GetDashboard 读取仪表盘统计缓存
func (s *RedisService) GetDashboard(dest interface{}) error {
	return s.Get(cacheKeyDashboard, dest)
}

// 9 InvalidateDashboard 清除仪表盘统计缓存
func (s *RedisService) InvalidateDashboard() error {
	return s.Delete(cacheKeyDashboard)
}

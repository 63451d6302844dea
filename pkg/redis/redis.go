package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"staff-registry/config"
)

// Client Redis 客户端封装
// 当前用于员工快照的读缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 员工快照缓存 ──

const employeeKeyPrefix = "employee:"

func employeeKey(id uint) string {
	return fmt.Sprintf("%s%d", employeeKeyPrefix, id)
}

// SetEmployee 写入员工 JSON 快照，TTL 到期自动失效
func (c *Client) SetEmployee(ctx context.Context, id uint, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, employeeKey(id), payload, ttl).Err()
}

// GetEmployee 读取员工 JSON 快照；未命中时返回 (nil, nil)
func (c *Client) GetEmployee(ctx context.Context, id uint) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, employeeKey(id)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// InvalidateEmployee 删除员工快照（更新或删除后调用）
func (c *Client) InvalidateEmployee(ctx context.Context, id uint) error {
	return c.rdb.Del(ctx, employeeKey(id)).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

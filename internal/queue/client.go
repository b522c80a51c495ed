package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// PricingQueue 定价相关任务队列
	PricingQueue = constants.QueuePricing
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	pricingQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, pricingQueue: PricingQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		pricingQueue: PricingQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueRuleStatusSync 在指定时刻推送规则状态同步任务
// 同一规则同一边界时刻只入队一次
func (c *Client) EnqueueRuleStatusSync(payload RuleStatusSyncPayload, at time.Time) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewRuleStatusSyncTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.pricingQueue),
		asynq.ProcessAt(at),
		asynq.TaskID(ruleStatusSyncTaskID(payload, at)),
		asynq.MaxRetry(5),
	}
	_, err = c.client.Enqueue(task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// EnqueuePricingCacheRefresh 推送规则缓存刷新任务
func (c *Client) EnqueuePricingCacheRefresh(payload PricingCacheRefreshPayload, opts ...asynq.Option) error {
	if !c.Enabled() || len(payload.VenueIDs) == 0 {
		return nil
	}
	task, err := NewPricingCacheRefreshTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{asynq.Queue(c.pricingQueue)}, opts...)
	_, err = c.client.Enqueue(task, options...)
	return err
}

func ruleStatusSyncTaskID(payload RuleStatusSyncPayload, at time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%d", TaskPricingRuleStatus, payload.RuleID, payload.Boundary, at.Unix())
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1, PricingQueue: 2}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}

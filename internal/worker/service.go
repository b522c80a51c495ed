package worker

import (
	"context"
	"errors"
	"time"

	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultStatusSyncInterval = time.Minute
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	interval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		interval: cfg.Pricing.StatusSyncInterval(),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	go runStatusSyncLoop(ctx, s.consumer, s.interval)
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// StatusSyncService 队列关闭时的规则状态定时同步
type StatusSyncService struct {
	consumer *Consumer
	interval time.Duration
}

// NewStatusSyncService 创建规则状态定时同步服务
func NewStatusSyncService(cfg *config.Config, consumer *Consumer) (*StatusSyncService, error) {
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	interval := defaultStatusSyncInterval
	if cfg != nil {
		interval = cfg.Pricing.StatusSyncInterval()
	}
	return &StatusSyncService{consumer: consumer, interval: interval}, nil
}

// Name 服务名称
func (s *StatusSyncService) Name() string {
	return "rule_status_sync"
}

// Start 启动服务，阻塞直到 ctx 取消
func (s *StatusSyncService) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("status sync not initialized")
	}
	runStatusSyncLoop(ctx, s.consumer, s.interval)
	return nil
}

// Stop 停止服务
func (s *StatusSyncService) Stop(ctx context.Context) error {
	return nil
}

func runStatusSyncLoop(ctx context.Context, consumer *Consumer, interval time.Duration) {
	if consumer == nil {
		return
	}
	if interval <= 0 {
		interval = defaultStatusSyncInterval
	}
	consumer.syncRuleStatuses(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			consumer.syncRuleStatuses(ctx)
		}
	}
}

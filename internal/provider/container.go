package provider

import (
	"github.com/venue-next/internal/authz"
	"github.com/venue-next/internal/cache"
	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/queue"
	"github.com/venue-next/internal/repository"
	"github.com/venue-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	VenueRepo         repository.VenueRepository
	AssetRepo         repository.AssetRepository
	PricingRuleRepo   repository.PricingRuleRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService            *authz.Service
	AuthService             *service.AuthService
	VenueService            *service.VenueService
	AssetService            *service.AssetService
	PricingService          *service.PricingService
	PricingRuleAdminService *service.PricingRuleAdminService
	RuleLifecycleService    *service.RuleLifecycleService
	AuthzAuditService       *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.VenueRepo = repository.NewVenueRepository(db)
	c.AssetRepo = repository.NewAssetRepository(db)
	c.PricingRuleRepo = repository.NewPricingRuleRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.PricingService = service.NewPricingService(c.Config, c.VenueRepo, c.AssetRepo, c.PricingRuleRepo)
	c.VenueService = service.NewVenueService(c.Config, c.VenueRepo)
	c.AssetService = service.NewAssetService(c.VenueRepo, c.AssetRepo, c.PricingService)
	c.PricingRuleAdminService = service.NewPricingRuleAdminService(c.VenueRepo, c.AssetRepo, c.PricingRuleRepo, c.PricingService, c.QueueClient)
	c.RuleLifecycleService = service.NewRuleLifecycleService(c.PricingRuleRepo, c.PricingService)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}

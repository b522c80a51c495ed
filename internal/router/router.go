package router

import (
	"fmt"
	"strings"

	"github.com/venue-next/internal/cache"
	"github.com/venue-next/internal/config"
	adminhandlers "github.com/venue-next/internal/http/handlers/admin"
	publichandlers "github.com/venue-next/internal/http/handlers/public"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vn"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	quoteRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:quote", redisPrefix),
		WindowSeconds: cfg.Security.QuoteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.QuoteRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.QuoteRateLimit.BlockSeconds,
		MessageKey:    "error.quote_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware())

	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	apiV1 := r.Group("/api/v1")
	{
		// 公开报价
		public := apiV1.Group("/public")
		{
			public.GET("/venues/:venue_id/assets/:asset_id/quote",
				RateLimitMiddleware(redisClient, quoteRule, KeyByIP),
				publicHandler.GetAssetQuote,
			)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService))
			{
				// 登录即可访问
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/venues", adminHandler.ListVenues)

				// 超级管理员
				super := authorized.Group("")
				super.Use(SuperAdminMiddleware())
				{
					super.POST("/venues", adminHandler.CreateVenue)
					super.PUT("/venues/:venue_id", adminHandler.UpdateVenue)

					super.GET("/authz/roles", adminHandler.ListAuthzRoles)
					super.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
					super.GET("/authz/admins", adminHandler.ListAuthzAdmins)
					super.GET("/authz/admins/:id/venues/:venue_id/roles", adminHandler.GetAuthzAdminRoles)
					super.PUT("/authz/admins/:id/venues/:venue_id/roles", adminHandler.SetAuthzAdminRoles)
					super.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				}

				// 场馆级 RBAC
				venue := authorized.Group("/venues/:venue_id")
				venue.Use(AdminRBACMiddleware(c.AuthzService))
				{
					venue.GET("", adminHandler.GetVenue)

					venue.GET("/assets", adminHandler.ListAssets)
					venue.POST("/assets", adminHandler.CreateAsset)
					venue.GET("/assets/:id", adminHandler.GetAsset)
					venue.PUT("/assets/:id", adminHandler.UpdateAsset)
					venue.DELETE("/assets/:id", adminHandler.DeleteAsset)

					venue.GET("/pricing-rules", adminHandler.ListPricingRules)
					venue.POST("/pricing-rules", adminHandler.CreatePricingRule)
					venue.GET("/pricing-rules/stats", adminHandler.GetPricingRuleStats)
					venue.POST("/pricing-rules/preview", adminHandler.PreviewPricingRule)
					venue.GET("/pricing-rules/:id", adminHandler.GetPricingRule)
					venue.PUT("/pricing-rules/:id", adminHandler.UpdatePricingRule)
					venue.DELETE("/pricing-rules/:id", adminHandler.DeletePricingRule)
					venue.PATCH("/pricing-rules/:id/status", adminHandler.UpdatePricingRuleStatus)

					venue.POST("/pricing/preview", adminHandler.PreviewVenuePrice)
				}
			}
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	return r
}

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/theananta/certificate-studio/internal/config"
	"github.com/theananta/certificate-studio/internal/handler"
	"github.com/theananta/certificate-studio/internal/middleware"
)

// RegisterPublic wires the unauthenticated verification endpoints.
// They take anonymous traffic from printed QR codes, so both the
// response cache and the rate limiter sit in front of them. Template
// background images are served statically for the same reason.
func RegisterPublic(e *echo.Echo, v *handler.VerifyHandler, cfg config.Config, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	limit := middleware.NewTokenBucket(rlCfg, rdb)

	e.GET("/verify", v.Verify, limit, cache)
	e.GET("/verify/image", v.VerifyImage, limit, cache)
	e.GET("/verify/pdf", v.VerifyPDF, limit, cache)

	e.Static("/templates", cfg.TemplatesDir)
}

package handler

import (
	"github.com/redis/go-redis/v9"

	"github.com/theananta/certificate-studio/internal/config"
	"github.com/theananta/certificate-studio/internal/repository"
)

// OrganizerHandler bundles the repositories behind the authenticated
// /v1 API. The Redis client is optional and only used to drop cached
// verification responses when a certificate is revoked.
type OrganizerHandler struct {
	Cfg          config.Config
	CacheCfg     config.CacheConfig
	Events       *repository.EventRepo
	Participants *repository.ParticipantRepo
	Templates    *repository.TemplateRepo
	Certificates *repository.CertificateRepo
	Redis        *redis.Client
}

// NewOrganizerHandler constructs an OrganizerHandler and panics if a
// required repository is nil.
func NewOrganizerHandler(cfg config.Config, cacheCfg config.CacheConfig, ev *repository.EventRepo, pa *repository.ParticipantRepo, te *repository.TemplateRepo, ce *repository.CertificateRepo, rdb *redis.Client) *OrganizerHandler {
	if ev == nil || pa == nil || te == nil || ce == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{
		Cfg:          cfg,
		CacheCfg:     cacheCfg,
		Events:       ev,
		Participants: pa,
		Templates:    te,
		Certificates: ce,
		Redis:        rdb,
	}
}

package crm

import (
	apphttp "medportal_backend/internal/http"
	"medportal_backend/internal/leads/management"
	"medportal_backend/platform/config"
	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/logger"
	"medportal_backend/platform/validator"

	"golang.org/x/time/rate"
)

// Module is the CRM sync bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	intake  *httpkit.IPRateLimiter
}

// NewModule creates and initializes the CRM sync module.
func NewModule(leads *management.Service, cfg config.CRMConfig, val *validator.Validator, log *logger.Logger) *Module {
	client := NewClient(cfg)
	svc := New(client, leads, cfg.IsCRMEnabled(), log)
	return &Module{
		handler: NewHandler(svc, val),
		intake:  httpkit.NewIPRateLimiter(rate.Limit(2), 10, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "crm"
}

// RegisterRoutes mounts the sync intake routes. These are public form
// submission targets, so they are rate limited by IP like lead intake.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Public.Group("/crm", m.intake.RateLimit()))
}

// Package engage implements the outbound engagement dispatcher: transactional
// email, WhatsApp deep links and single-use scheduling links.
package engage

import (
	"medportal_backend/internal/calendly"
	"medportal_backend/internal/events"
	apphttp "medportal_backend/internal/http"
	leadsrepo "medportal_backend/internal/leads/repository"
	"medportal_backend/platform/config"
	"medportal_backend/platform/logger"
	"medportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ModuleConfig carries the external configuration the engage module needs.
type ModuleConfig interface {
	config.CalendlyConfig
	config.WhatsAppConfig
}

// Module is the engagement bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the engage module with all its dependencies.
func NewModule(pool *pgxpool.Pool, leadStore *leadsrepo.Repository, eventBus events.Bus, cfg ModuleConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	scheduler := calendly.NewClient(cfg)
	svc := New(repo, leadStore, scheduler, nil, eventBus, log, cfg.GetWhatsAppDefaultMessage())

	return &Module{handler: NewHandler(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "engage"
}

// RegisterRoutes mounts the engagement routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/engage"))
}

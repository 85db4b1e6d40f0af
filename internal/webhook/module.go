package webhook

import (
	"medportal_backend/internal/events"
	apphttp "medportal_backend/internal/http"
	leadsrepo "medportal_backend/internal/leads/repository"
	"medportal_backend/platform/config"
	"medportal_backend/platform/logger"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler    *Handler
	signingKey string
}

// NewModule creates and initializes the webhook module.
func NewModule(store *leadsrepo.Repository, eventBus events.Bus, cfg config.CalendlyConfig, log *logger.Logger) *Module {
	svc := New(store, eventBus, log)
	return &Module{
		handler:    NewHandler(svc, log),
		signingKey: cfg.GetCalendlyWebhookSigningKey(),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts the webhook routes. Deliveries are authenticated by
// signature rather than by admin JWT, so they live on the public group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/webhook")
	group.POST("/calendly", RequireSignature(m.signingKey), m.handler.HandleCalendly)
}

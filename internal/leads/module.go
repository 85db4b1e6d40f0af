// Package leads provides the lead lifecycle bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"medportal_backend/internal/events"
	apphttp "medportal_backend/internal/http"
	"medportal_backend/internal/leads/handler"
	"medportal_backend/internal/leads/management"
	"medportal_backend/internal/leads/notes"
	"medportal_backend/internal/leads/repository"
	"medportal_backend/internal/leads/status"
	"medportal_backend/internal/leads/timeline"
	"medportal_backend/platform/httpkit"
	"medportal_backend/platform/logger"
	"medportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	repo       *repository.Repository
	management *management.Service
	status     *status.Service
	intake     *httpkit.IPRateLimiter
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	mgmtSvc := management.New(repo, eventBus)
	statusSvc := status.New(repo, eventBus)
	notesSvc := notes.New(repo)
	timelineSvc := timeline.New(repo)

	notesHandler := handler.NewNotesHandler(notesSvc, val)
	h := handler.New(mgmtSvc, statusSvc, timelineSvc, notesHandler, val)

	return &Module{
		handler:    h,
		repo:       repo,
		management: mgmtSvc,
		status:     statusSvc,
		intake:     httpkit.NewIPRateLimiter(rate.Limit(2), 10, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Repository returns the shared leads repository for cross-module wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// ManagementService returns the lead management service for external use.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// StatusService returns the lead status service for external use.
func (m *Module) StatusService() *status.Service {
	return m.status
}

// RegisterRoutes mounts the leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public intake is rate limited by IP; everything else requires auth.
	publicGroup := ctx.Public.Group("/leads", m.intake.RateLimit())
	m.handler.RegisterPublicRoutes(publicGroup)

	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

package content

import (
	apphttp "medportal_backend/internal/http"
	"medportal_backend/internal/translate"
	"medportal_backend/platform/config"
	"medportal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the content bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the content module.
func NewModule(pool *pgxpool.Pool, cfg config.TranslateConfig, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	pipeline := translate.NewPipeline(translate.NewGoogleProvider(cfg))
	svc := New(repo, pipeline, cfg.IsTranslateEnabled(), log)
	return &Module{handler: NewHandler(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "content"
}

// RegisterRoutes mounts the content routes: reads are public for the site,
// writes require an authenticated admin.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public.Group("/content"))
	m.handler.RegisterRoutes(ctx.Protected.Group("/content"))
}

package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"profit-service/internal/config"
	"profit-service/internal/middleware"
	profitHnd "profit-service/internal/profit/handler"
	profitSvc "profit-service/internal/profit/service"
	"profit-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, engine *profitSvc.Engine) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)

	r.Post("/process", profitHnd.Process(cfg, logger, engine))
	r.Get("/costs/reference", profitHnd.Reference(logger, engine))

	return r
}

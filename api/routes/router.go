package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/lotlister-backend/api/controllers"
	"github.com/angelmondragon/lotlister-backend/api/middleware"
	"github.com/angelmondragon/lotlister-backend/internal/cards"
	"github.com/angelmondragon/lotlister-backend/internal/export"
	"github.com/angelmondragon/lotlister-backend/internal/grouping"
	"github.com/angelmondragon/lotlister-backend/internal/lots"
	"github.com/angelmondragon/lotlister-backend/pkg/config"
	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/lotlister-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Lots     lots.Service
	Cards    cards.Service
	Grouping grouping.Service
	Export   export.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	cache pkgredis.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, database, cache))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/lots", func(r chi.Router) {
			r.Post("/", controllers.CreateLot(svcs.Lots, logg))
			r.Get("/", controllers.ListLots(svcs.Lots, logg))

			r.Route("/{lotID}", func(r chi.Router) {
				r.Get("/", controllers.GetLot(svcs.Lots, logg))
				r.Delete("/", controllers.DeleteLot(svcs.Lots, logg))

				r.Get("/cards", controllers.ListCards(svcs.Cards, logg))
				r.Put("/cards/status", controllers.BulkUpdateCardStatus(svcs.Cards, logg))

				r.Post("/images/complete", controllers.CompleteUpload(svcs.Grouping, logg))
				r.Post("/regroup", controllers.Regroup(svcs.Grouping, logg))

				r.Get("/export/profile", controllers.GetExportProfile(svcs.Export, logg))
				r.Put("/export/profile", controllers.SaveExportProfile(svcs.Export, logg))
				r.Get("/export/readiness", controllers.ExportReadiness(svcs.Export, logg))
				r.Get("/export/download", controllers.DownloadExport(svcs.Export, cfg, logg))
			})
		})

		r.Route("/cards/{cardID}", func(r chi.Router) {
			r.Get("/", controllers.GetCard(svcs.Cards, logg))
			r.Patch("/", controllers.UpdateCard(svcs.Cards, logg))
			r.Post("/clone", controllers.CloneCard(svcs.Cards, logg))
			r.Delete("/", controllers.DeleteCard(svcs.Cards, logg))
		})
	})

	return r
}

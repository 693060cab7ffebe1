package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaxtrackhq/vaxtrack-backend/api/controllers"
	"github.com/vaxtrackhq/vaxtrack-backend/api/middleware"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/adjustments"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/reports"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/shipments"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/vaccines"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/config"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
	pkgredis "github.com/vaxtrackhq/vaxtrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	vaccineService vaccines.Service,
	inventoryService inventory.Service,
	adjustmentService adjustments.Service,
	shipmentService shipments.Service,
	reportService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	// A typed-nil *Client must not reach the middleware as a non-nil
	// interface value.
	var idempotencyStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		idempotencyStore = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/vaccines", func(r chi.Router) {
			r.Get("/", controllers.ListVaccines(vaccineService, logg))
			r.Post("/", controllers.CreateVaccine(vaccineService, logg))
			r.Get("/{id}", controllers.GetVaccine(vaccineService, logg))
			r.Patch("/{id}", controllers.UpdateVaccine(vaccineService, logg))
			r.Delete("/{id}", controllers.DeleteVaccine(vaccineService, logg))
			r.Post("/{id}/administer", controllers.AdministerDoses(vaccineService, logg))
			r.Post("/{id}/adjustments", controllers.AdjustQuantity(vaccineService, logg))
			r.Get("/{id}/adjustments", controllers.ListVaccineAdjustments(adjustmentService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", controllers.DashboardMetrics(inventoryService, logg))
			r.Get("/alerts", controllers.DashboardAlerts(inventoryService, logg))
			r.Get("/families", controllers.DashboardFamilies(inventoryService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/vaccines", controllers.VaccineReport(reportService, logg))
			r.Get("/vaccines/export", controllers.ExportVaccineReport(reportService, logg))
		})

		r.Route("/shipments", func(r chi.Router) {
			r.Get("/", controllers.ListShipments(shipmentService, logg))
			r.Post("/", controllers.CreateShipment(shipmentService, logg))
			r.Get("/recent", controllers.RecentShipments(shipmentService, logg))
			r.Get("/{id}", controllers.GetShipment(shipmentService, logg))
			r.Patch("/{id}", controllers.UpdateShipment(shipmentService, logg))
			r.Delete("/{id}", controllers.DeleteShipment(shipmentService, logg))
		})

		r.Route("/adjustments", func(r chi.Router) {
			r.Get("/", controllers.ListAdjustments(adjustmentService, logg))
			r.Post("/", controllers.CreateAdjustment(adjustmentService, logg))
			r.Get("/{id}", controllers.GetAdjustment(adjustmentService, logg))
			r.Patch("/{id}", controllers.UpdateAdjustment(adjustmentService, logg))
			r.Delete("/{id}", controllers.DeleteAdjustment(adjustmentService, logg))
		})

		r.Route("/reference", func(r chi.Router) {
			r.Get("/families", controllers.ListVaccineFamilies())
			r.Get("/adjustment-reasons", controllers.ListAdjustmentReasons())
		})
	})

	return r
}

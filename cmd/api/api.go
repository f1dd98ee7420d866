package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/idp-construccion/erp-backend/internal/logger"
	"github.com/idp-construccion/erp-backend/internal/store"
)

type application struct {
	config config
	store  store.Storage
	logger *logger.Logger
}

type config struct {
	addr          string
	db            dbConfig
	corsOrigins   []string
	adminPassword string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", app.healthCheckHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/verify", app.handleVerifyPassword)

		r.Route("/obras", func(r chi.Router) {
			r.Get("/", app.handleListObras)
			r.Post("/", app.handleCreateObra)
			r.Get("/{id}", app.handleGetObra)
			r.Put("/{id}", app.handleUpdateObra)
			r.Delete("/{id}", app.handleDeleteObra)
		})

		r.Route("/proveedores", func(r chi.Router) {
			r.Get("/", app.handleListProveedores)
			r.Post("/", app.handleCreateProveedor)
			r.Post("/validar-linea-credito", app.handleValidarLineaCredito)
			r.Get("/{id}", app.handleGetProveedor)
			r.Put("/{id}", app.handleUpdateProveedor)
			r.Delete("/{id}", app.handleDeleteProveedor)
		})

		r.Route("/requisiciones", func(r chi.Router) {
			r.Get("/", app.handleListRequisiciones)
			r.Post("/", app.handleCreateRequisicion)
			r.Get("/{id}", app.handleGetRequisicion)
			r.Put("/{id}", app.handleUpdateRequisicion)
			r.Put("/{id}/aprobar", app.handleAprobarRequisicion)
			r.Delete("/{id}", app.handleDeleteRequisicion)
		})

		r.Route("/ordenes-compra", func(r chi.Router) {
			r.Get("/", app.handleListOrdenes)
			r.Post("/", app.handleCreateOrden)
			r.Get("/{id}", app.handleGetOrden)
			r.Put("/{id}", app.handleUpdateOrden)
			r.Delete("/{id}", app.handleDeleteOrden)
		})

		r.Route("/pagos", func(r chi.Router) {
			r.Get("/", app.handleListPagos)
			r.Post("/", app.handleCreatePago)
			r.Get("/{id}", app.handleGetPago)
			r.Put("/{id}", app.handleUpdatePago)
			r.Put("/{id}/procesar", app.handleProcesarPago)
			r.Delete("/{id}", app.handleDeletePago)
		})

		r.Route("/gastos", func(r chi.Router) {
			r.Get("/", app.handleListGastos)
			r.Post("/", app.handleCreateGasto)
			r.Delete("/{id}", app.handleDeleteGasto)
		})

		r.Route("/gastos-indirectos", func(r chi.Router) {
			r.Post("/calcular-distribucion", app.handleCalcularDistribucion)
			r.Get("/distribucion/{mes}", app.handleGetDistribucion)
		})

		r.Get("/alertas/vencimientos-credito", app.handleAlertasVencimientos)

		r.Route("/bank-transactions", func(r chi.Router) {
			r.Get("/", app.handleListBankTransactions)
			r.Post("/", app.handleCreateBankTransaction)
			r.Post("/import", app.handleImportBankTransactions)
			r.Put("/{id}/match", app.handleMatchBankTransaction)
		})

		r.Route("/destajos", func(r chi.Router) {
			r.Get("/", app.handleListDestajos)
			r.Post("/", app.handleCreateDestajo)
		})

		r.Get("/dashboard/estadisticas", app.handleEstadisticas)
		r.Get("/reportes/obra-financiero/{id}", app.handleReporteObraFinanciero)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("Server", "Listening on %s", app.config.addr)
	return srv.ListenAndServe()
}

package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftline/payroll-backend-go/internal/handler/http/middleware"
	"github.com/shiftline/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, runHandler RunHandler, settingsHandler SettingsHandler, reportHandler ReportHandler, storageBasePath string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftline-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	// Exported payroll registers
	r.Handle("/exports/*", http.StripPrefix("/exports/", http.FileServer(http.Dir(storageBasePath))))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll-runs", func(r chi.Router) {
				r.Post("/", runHandler.Generate)
				r.Get("/", runHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", runHandler.Get)
					r.Delete("/", runHandler.Delete)
					r.Post("/finalize", runHandler.Finalize)
					r.Post("/void", runHandler.Void)

					r.Route("/adjustments", func(r chi.Router) {
						r.Post("/", runHandler.AddAdjustment)
						r.Delete("/{adjustmentID}", runHandler.RemoveAdjustment)
					})

					r.Get("/snapshot", reportHandler.GetSnapshot)
					r.Post("/export", reportHandler.ExportPDF)
				})
			})

			r.Route("/payroll-settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)
				r.Put("/", settingsHandler.UpdateSettings)
			})
		})
	})
	return r
}

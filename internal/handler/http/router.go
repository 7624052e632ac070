package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/clockin-console/internal/config"
	"github.com/cmlabs-hris/clockin-console/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "clockin-console"
	appVersion = "v1.0.0"
)

func NewRouter(appCfg config.AppConfig, attendanceHandler AttendanceHandler, settingsHandler SettingsHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env == "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  parseLevel(appCfg.LogLevel),
		Schema: logFormat,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetCalendar)
				r.With(chiMiddleware.AllowContentType("application/json")).
					Post("/classify", attendanceHandler.ClassifyPayload)
			})
			r.Route("/next-action", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetNextAction)
				r.Get("/stream", attendanceHandler.StreamNextAction)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/clock-window", settingsHandler.GetClockWindow)
			r.With(chiMiddleware.AllowContentType("application/json")).
				Put("/clock-window", settingsHandler.UpdateClockWindow)
		})
	})
	return r
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

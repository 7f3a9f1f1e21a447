package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"worktime/accounting"
	"worktime/handlers"
	"worktime/middleware"
	"worktime/models"
	"worktime/store"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "Port to listen on (overrides SERVER_PORT)")
}

func newRouter(s *store.Store, auth *middleware.Auth, clock handlers.Clock, log *slog.Logger) http.Handler {
	engine := accounting.NewEngine(s, accounting.Clock(clock), cfg.BreakLookbackWeeks, log.With("component", "accounting"))

	httpLog := log.With("component", "http")
	authHandler := handlers.NewAuthHandler(s, auth, httpLog)
	timeHandler := handlers.NewTimeHandler(s, clock, httpLog)
	leaveHandler := handlers.NewLeaveHandler(s, httpLog)
	statsHandler := handlers.NewStatsHandler(engine, clock, httpLog)
	settingsHandler := handlers.NewSettingsHandler(s, httpLog)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(httpLog))
	router.Use(chimiddleware.Recoverer)

	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Post("/logout", authHandler.Logout)

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Use(middleware.RequirePasswordChange("/api/password"))

		r.Post("/password", authHandler.ChangePassword)

		r.Get("/status", timeHandler.Status)
		r.Post("/clock/in", timeHandler.ClockIn)
		r.Post("/clock/out", timeHandler.ClockOut)
		r.Post("/break/start", timeHandler.StartBreak)
		r.Post("/break/end", timeHandler.EndBreak)

		r.Get("/stats", statsHandler.Stats)
		r.Get("/weeks", statsHandler.Weeks)
		r.Get("/weeks/{week}", statsHandler.Week)
		r.Get("/weeks/{week}/export", statsHandler.ExportWeek)

		r.Post("/time", timeHandler.CreateEntry)
		r.Get("/time/{id}", timeHandler.GetEntry)
		r.Put("/time/{id}", timeHandler.UpdateEntry)
		r.Delete("/time/{id}", timeHandler.DeleteEntry)
		r.Post("/time/{id}/breaks", timeHandler.AddBreak)
		r.Put("/breaks/{id}", timeHandler.UpdateBreak)
		r.Delete("/breaks/{id}", timeHandler.DeleteBreak)

		r.Post("/leave", leaveHandler.Create)
		r.Get("/leave/{id}", leaveHandler.Get)
		r.Put("/leave/{id}", leaveHandler.Update)
		r.Delete("/leave/{id}", leaveHandler.Delete)

		r.Get("/settings", settingsHandler.Get)
		r.Patch("/settings", settingsHandler.Update)

		r.With(middleware.RequireRole(models.RoleAdmin)).Post("/users", authHandler.CreateUser)
	})

	return router
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagPort != "" {
		cfg.ServerPort = flagPort
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	auth := middleware.NewAuth(cfg.JWTSecret, cfg.JWTExpiration, s.GetUser)

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           newRouter(s, auth, time.Now, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskup/api/handler"
	"github.com/fastygo/taskup/internal/app"
	"github.com/fastygo/taskup/internal/infrastructure/monitor"
	"github.com/fastygo/taskup/internal/middleware"
	"github.com/fastygo/taskup/internal/router"
	"github.com/fastygo/taskup/internal/services/lifecycle"
	"github.com/fastygo/taskup/pkg/httpcontext"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	kv, err := app.OpenStore(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	stores, err := app.LoadStores(appCtx, kv, app.StoreOptionsFrom(cfg, zapLogger))
	if err != nil {
		zapLogger.Fatal("failed to load stores", zap.Error(err))
	}

	mon, err := monitor.New(kv, cfg.Storage.Driver, cfg.Monitor.Interval, zapLogger.Named("monitor"))
	if err != nil {
		zapLogger.Fatal("monitor setup failed", zap.Error(err))
	}
	mon.Start()
	manager.Register("monitor", mon.Stop)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(stores.Auth, ctxAdapter, zapLogger),
		Profile:     apiHandler.NewProfileHandler(stores.Auth, ctxAdapter, zapLogger),
		Task:        apiHandler.NewTaskHandler(stores.Tasks, ctxAdapter, zapLogger),
		Group:       apiHandler.NewGroupHandler(stores.Groups, ctxAdapter, zapLogger),
		Participant: apiHandler.NewParticipantHandler(stores.Participants, ctxAdapter, zapLogger),
		View:        apiHandler.NewViewHandler(stores.Views, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, stores.Auth.IsCurrent, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      middleware.AccessLog(zapLogger)(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()), zap.String("storage", cfg.Storage.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})
	zapLogger.Info("shutdown hooks registered", zap.Strings("order", manager.Hooks()))

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
		return err
	}
	return nil
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"gallery-server/internal/domain/auth"
	"gallery-server/internal/domain/client"
	"gallery-server/internal/domain/contact"
	"gallery-server/internal/domain/photo"
	platformconfig "gallery-server/internal/platform/config"
	platformerrors "gallery-server/internal/platform/errors"
	platformlogging "gallery-server/internal/platform/logging"
	"gallery-server/internal/platform/mail"
	platformstorage "gallery-server/internal/platform/storage"
	"gallery-server/internal/platform/uploads"
	httptransport "gallery-server/internal/transport/http"
	httpwebapi "gallery-server/internal/transport/http/webapi"
)

const shutdownTimeout = 15 * time.Second

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config   *platformconfig.Config
	logger   *platformlogging.Logger
	db       *gorm.DB
	uploads  uploads.Provider
	notifier mail.Notifier
}

// Run drives the whole service lifecycle: configuration, dependency
// initialisation, the HTTP server, and graceful shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	if err := executeInitSteps(ctx, InitGraph(), state); err != nil {
		return err
	}

	logger := state.logger
	if state.config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	defer logger.Close()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return waitForShutdown(signalCtx, cancel, logger, group)
}

// InitGraph lists the initialisation steps in dependency order.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "storage:init-database",
			Title:     "Initialise database",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initDatabaseStep,
		},
		{
			ID:        "storage:init-uploads",
			Title:     "Initialise storage provider",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initUploadsStep,
		},
		{
			ID:        "mail:init-notifier",
			Title:     "Initialise email notifier",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindConfig,
			Execute:   initMailStep,
		},
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func loadConfigStep(_ context.Context, state *appState) error {
	cfg, err := platformconfig.NewLoader().Load()
	if err != nil {
		return err
	}
	state.config = cfg
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state.config == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"logging:init-provider",
			"config not loaded",
		)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to initialise logging provider", err)
	}
	state.logger = logger

	logger.InfoTag("Bootstrap", "logging ready [%s]", state.config.Log.Level)
	return nil
}

func initDatabaseStep(_ context.Context, state *appState) error {
	db, err := platformstorage.Open(state.config.Store.DBPath)
	if err != nil {
		return err
	}
	state.db = db
	state.logger.InfoTag("Bootstrap", "database ready at %s", state.config.Store.DBPath)
	return nil
}

func initUploadsStep(_ context.Context, state *appState) error {
	provider, err := uploads.FromConfig(state.config.Uploads, state.logger)
	if err != nil {
		return err
	}
	state.uploads = provider
	state.logger.InfoTag("Bootstrap", "storage provider ready [%s]", provider.Name())
	return nil
}

func initMailStep(_ context.Context, state *appState) error {
	notifier, err := mail.FromConfig(state.config.Email, state.logger)
	if err != nil {
		return err
	}
	state.notifier = notifier
	state.logger.InfoTag("Bootstrap", "email notifier ready [%s]", notifier.Name())
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) (*http.Server, error) {
	config := state.config
	logger := state.logger

	uploadsDir := ""
	if local, ok := state.uploads.(*uploads.Local); ok {
		uploadsDir = local.Dir()
	}

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config:     config,
		Logger:     logger,
		UploadsDir: uploadsDir,
	})
	if err != nil {
		return nil, err
	}

	webapiService, err := httpwebapi.NewService(httpwebapi.Options{
		Config:   config,
		Logger:   logger,
		Tokens:   auth.NewTokenService(config.Auth.JWTSecret).WithTTL(config.Auth.TokenTTL),
		Clients:  client.NewService(state.db),
		Photos:   photo.NewService(state.db),
		Contact:  contact.NewService(state.db, state.notifier, logger),
		Uploads:  state.uploads,
		Notifier: state.notifier,
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "webapi:new-service", "failed to create webapi service", err)
	}

	if err := webapiService.Register(groupCtx, httpRouter.API); err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(config.Server.Port),
		Handler: httpRouter.Engine,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "gallery server listening on http://localhost:%d", config.Server.Port)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "HTTP server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "HTTP server stopped cleanly")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "HTTP server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("Bootstrap", "received signal %v, cleaning up", context.Cause(ctx))

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("Bootstrap", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("Bootstrap", "all services stopped")
	case <-time.After(shutdownTimeout):
		logger.ErrorTag("Bootstrap", "shutdown timed out, exiting")
		return errors.New("shutdown timed out")
	}
	return nil
}

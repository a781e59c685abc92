package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"calcapi/internal/api"
	"calcapi/internal/config"
	"calcapi/internal/database"
	internalgrpc "calcapi/internal/grpc"
	"calcapi/internal/logging"
	"calcapi/internal/tasks"
)

type serveOptions struct {
	port     string
	grpcPort string
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.port, "port", "", "HTTP port, overrides PORT")
	cmd.Flags().StringVar(&o.grpcPort, "grpc-port", "", `gRPC health port, overrides GRPC_PORT ("" disables)`)
}

// apply переносит явно заданные флаги в конфигурацию
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = o.port
	}
	if cmd.Flags().Changed("grpc-port") {
		cfg.GRPCPort = o.grpcPort
	}
	return cfg.Validate()
}

func newServeCmd(use string) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:          use,
		Short:        "Start the HTTP and gRPC health servers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile := config.LoadEnvFiles()
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			if envFile != "" {
				logger.Info("loaded environment file", "file", envFile)
			}

			httpLis, grpcLis, err := listen(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger, httpLis, grpcLis)
		},
	}
	opts.bind(cmd)
	return cmd
}

// listen открывает сокеты HTTP и gRPC. grpcLis равен nil, если gRPC отключен.
func listen(cfg *config.Config) (httpLis, grpcLis net.Listener, err error) {
	httpLis, err = net.Listen("tcp", cfg.HTTPAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("listen http %s: %w", cfg.HTTPAddr(), err)
	}

	if addr := cfg.GRPCAddr(); addr != "" {
		grpcLis, err = net.Listen("tcp", addr)
		if err != nil {
			httpLis.Close()
			return nil, nil, fmt.Errorf("listen grpc %s: %w", addr, err)
		}
	}

	return httpLis, grpcLis, nil
}

// serve обслуживает запросы до отмены ctx. grpcLis может быть nil.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, httpLis, grpcLis net.Listener) error {
	history, err := database.Open(cfg.HistoryDSN)
	if err != nil {
		httpLis.Close()
		if grpcLis != nil {
			grpcLis.Close()
		}
		return err
	}
	defer history.Close()

	router := api.SetupRouter(api.Deps{
		Logger:       logger,
		Tasks:        tasks.NewStore(),
		History:      history,
		HistoryLimit: cfg.HistoryLimit,
	})

	httpSrv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server started", "addr", httpLis.Addr().String())
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var grpcSrv *internalgrpc.Server
	if grpcLis != nil {
		grpcSrv = internalgrpc.NewServer(logger)
		go func() {
			if err := grpcSrv.Serve(grpcLis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errCh:
		logger.Error("server failed", "error", runErr)
	}

	if grpcSrv != nil {
		grpcSrv.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
		httpSrv.Close()
	}
	if grpcSrv != nil {
		grpcSrv.Shutdown(shutdownCtx)
	}

	logger.Info("stopped")
	return runErr
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/api"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/cache"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	rediscache "github.com/d60-Lab/gin-blog/pkg/cache"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/mail"
	"github.com/d60-Lab/gin-blog/pkg/tracing"
)

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "run schema migration before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(c); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if autoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb, err := rediscache.InitRedis(cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	postCache := cache.NewPostCache(rdb, cfg.Redis.TTL)

	sender, err := mail.NewSender(cfg.Mail)
	if err != nil {
		return err
	}
	queue := mail.NewQueue(sender, cfg.Mail.QueueSize)
	stopMail := queue.Start(cfg.Mail.Workers)

	blog := service.NewBlogService(
		repository.NewPostRepository(db),
		repository.NewTagRepository(db),
		repository.NewCommentRepository(db),
		postCache,
		queue,
		service.BlogOptionsFromConfig(cfg),
	)
	orders := service.NewOrderService(repository.NewOrderRepository(db), cfg.Shop.PostalCountry)
	router := api.SetupRouter(cfg, handler.New(blog, orders, cfg.Server.BaseURL, cfg.Server.AllowedHosts))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(router)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
	// 先停 HTTP 再排空邮件队列
	if err := stopMail(shutdownCtx); err != nil {
		logger.Warn("mail queue not drained", zap.Int("pending", queue.QueueLen()), zap.Error(err))
	}
	sent, failed := queue.Stats()
	hits, misses := postCache.Counters()
	logger.Info("bye",
		zap.Int64("mail_sent", sent),
		zap.Int64("mail_failed", failed),
		zap.Int64("cache_hits", hits),
		zap.Int64("cache_misses", misses),
	)
	return nil
}

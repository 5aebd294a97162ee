package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/BinLe1988/reply-assist/api"
	"github.com/BinLe1988/reply-assist/api/handlers"
	"github.com/BinLe1988/reply-assist/pkg/ai"
	"github.com/BinLe1988/reply-assist/pkg/session"
	"github.com/BinLe1988/reply-assist/pkg/utils"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	// 初始化状态存储
	st, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.AI.APIKey == "" {
		log.Warn("AI API key is not set, generation requests will fail")
	}
	client := ai.NewClient(cfg.AI, log)

	secret := cfg.JWT.Secret
	if secret == "" {
		// 未配置时令牌在重启后失效
		secret = uuid.NewString()
		log.Warn("JWT secret is not set, using an ephemeral secret")
	}
	tokens, err := utils.NewTokenManager(secret, cfg.JWT.ExpiresIn)
	if err != nil {
		return err
	}

	sessions := session.NewManager(st, client, cfg.Social.ConnectDelay, log, session.WithIdleTTL(cfg.Session.IdleTTL))
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRouter(router, handlers.New(sessions, tokens, client, log), tokens, sessions, cfg.Server.AllowOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lazypower/momentum/internal/config"
	"github.com/lazypower/momentum/internal/gateway"
	"github.com/lazypower/momentum/internal/logger"
	"github.com/lazypower/momentum/internal/server"
	"github.com/lazypower/momentum/internal/store"
	"github.com/lazypower/momentum/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot webhook server and reminder scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}
	cfg := config.FromEnv()

	if cfg.Telegram.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	if cfg.Telegram.WebhookSecret == "" {
		return errors.New("MOMENTUM_WEBHOOK_SECRET environment variable is required")
	}

	logg, err := logger.New(cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	notifier := gateway.NewTelegram(cfg.Telegram.Token)

	sched := tracker.New(db, notifier, logg)
	sched.FastInterval = cfg.Scheduler.FastInterval
	sched.SlowInterval = cfg.Scheduler.SlowInterval

	loopCtx, stopLoops := context.WithCancel(context.Background())
	sched.Start(loopCtx)

	srv := server.New(db, notifier, logg, cfg.Telegram.WebhookSecret, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logg.Info("momentum serving", "addr", addr, "db", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	logg.Info("shutting down")

	stopLoops()
	sched.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/partyquiz/hotseat-backend/internal/bank"
	"github.com/partyquiz/hotseat-backend/internal/config"
	"github.com/partyquiz/hotseat-backend/internal/game"
	"github.com/partyquiz/hotseat-backend/internal/httpapi"
	"github.com/partyquiz/hotseat-backend/internal/hub"
)

func main() {
	root := &cobra.Command{
		Use:           "hotseat-server",
		Short:         "Multiplayer hot-seat trivia game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.RegisterFlags(root.Flags())

	if err := root.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Dev)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	b, err := loadBank(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timing := game.Timing{StepDelay: cfg.StepDelay, AnswerCutoff: cfg.AnswerCutoff}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	h := hub.NewHub(ctx, b, timing, rng, log)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.SetupRoutes(h, cfg.PublicURL, log),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadBank(cfg config.Config) (*bank.Bank, error) {
	if cfg.BankDir != "" {
		return bank.LoadDir(cfg.BankDir)
	}
	return bank.Default()
}

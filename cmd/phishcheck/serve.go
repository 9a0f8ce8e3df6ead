package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Totarae/phishcheck/internal/checker"
	"github.com/Totarae/phishcheck/internal/config"
	"github.com/Totarae/phishcheck/internal/handlers"
	"github.com/Totarae/phishcheck/internal/journal"
	"github.com/Totarae/phishcheck/internal/locale"
	"github.com/Totarae/phishcheck/internal/predictor"
	"github.com/Totarae/phishcheck/internal/router"
	"github.com/Totarae/phishcheck/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd создаёт команду serve.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Long: `Serve the URL check page, the JSON API and, unless disabled,
a same-origin proxy to the prediction endpoint at POST /predict.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}

// app - собранный веб-сервер со всеми зависимостями.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *session.Store
	server  *http.Server
	journal journal.Store
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	texts, err := locale.Parse(cfg.Language)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	// Интерфейсы остаются nil, пока журнал не открыт.
	var (
		recorder checker.Recorder
		history  handlers.History
	)
	if cfg.JournalPath != "" || cfg.JournalDSN != "" {
		a.journal, err = journal.Connect(ctx, cfg.JournalPath, cfg.JournalDSN, logger)
		if err != nil {
			return nil, err
		}
		recorder, history = a.journal, a.journal
	}

	client := predictor.NewClient(cfg.PredictURL, cfg.PredictTimeout, logger)
	a.store = session.NewStore(func(board *checker.Board) *checker.Checker {
		return checker.New(client, board,
			checker.WithTexts(texts),
			checker.WithStrict(cfg.StrictResults, cfg.SafeLabels),
			checker.WithRecorder(recorder),
			checker.WithLogger(logger),
		)
	}, cfg.SessionTTL, logger)
	a.store.SetLimit(cfg.SessionLimit)

	handler := handlers.NewHandler(session.NewManager([]byte(cfg.SessionKey)), a.store, texts, history, logger)

	opts := router.Options{StaticDir: cfg.StaticDir}
	if cfg.StaticDir != "" {
		handler.StaticPrefix = "/static"
		_, statErr := os.Stat(filepath.Join(cfg.StaticDir, "phishcheck.wasm"))
		handler.WASM = statErr == nil
	}
	if cfg.ProxyPredict {
		opts.PredictProxy, err = predictor.NewProxy(cfg.PredictURL, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	a.server = &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router.NewRouter(handler, logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Run обслуживает запросы до отмены ctx, затем мягко останавливает сервер.
func (a *app) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Сервер запущен", zap.String("address", a.cfg.ServerAddress),
			zap.String("predict_url", a.cfg.PredictURL))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Остановка сервера")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if a.cfg.SessionTTL > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(a.cfg.SessionTTL / 2)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := a.store.Sweep(); n > 0 {
						a.logger.Debug("sessions evicted", zap.Int("count", n))
					}
				}
			}
		})
	}

	return g.Wait()
}

// Close освобождает журнал.
func (a *app) Close() {
	if a.journal == nil {
		return
	}
	if err := a.journal.Close(); err != nil {
		a.logger.Warn("Ошибка закрытия журнала", zap.Error(err))
	}
}

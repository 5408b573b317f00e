package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardsmith/internal/api"
	"github.com/youruser/cardsmith/internal/art"
	"github.com/youruser/cardsmith/internal/assets"
	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/compositor"
	"github.com/youruser/cardsmith/internal/config"
	"github.com/youruser/cardsmith/internal/logging"
	"github.com/youruser/cardsmith/internal/util"
)

const sheetTitleSize = 72

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	logging.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// card data is optional: /api/cards/render works without it
	db, err := card.LoadDir(cfg.DataDir)
	if err != nil {
		logger.Warn("no card database loaded", "dir", cfg.DataDir, "err", err)
		db = card.NewDB(nil)
	}

	loader := assets.NewDir(cfg.Assets.Root, cfg.Assets.FallbackFonts)
	comp, err := compositor.New(
		loader,
		compositor.WithSpellTrapLabelColor(cfg.Compose.LabelColor()),
		compositor.WithNameSize(cfg.Compose.NameSize),
		compositor.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer comp.Close()

	if err := util.EnsureDir(cfg.Art.Dir); err != nil {
		return err
	}
	store := art.NewStore(cfg.Art.Dir, util.NewClient(cfg.Art.DownloadTimeout))
	store.HighResURL = cfg.Art.HighResURL
	store.StandardURL = cfg.Art.StandardURL
	store.Log = logger

	srv := api.NewServer(db, comp, store)
	srv.PreferHighRes = cfg.Art.PreferHighRes
	srv.Log = logger
	if face, err := loader.Face(compositor.TypeLineFont, sheetTitleSize); err != nil {
		logger.Warn("deck sheets without titles", "err", err)
	} else {
		srv.TitleFace = face
		defer face.Close()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api.RegisterRoutes(r, srv)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", httpSrv.Addr, "cards", db.Len())
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/config"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver"
	"github.com/MrSnakeDoc/dawnpage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/dawnpage/internal/index"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/probe"
	"github.com/MrSnakeDoc/dawnpage/internal/scheduler"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/sources/homepage"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/version"
	"github.com/MrSnakeDoc/dawnpage/internal/wallpaper"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	server     *httpserver.Server
	storage    *Storage
	session    *session.Session
	reloader   *scheduler.HomepageReloader
	wallpapers *scheduler.WallpaperRefresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Storage first: without it there is nothing to serve
	storage, err := OpenStorage(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s storage: %v", cfg.Storage, err)
		os.Exit(1)
	}

	// Session owns the live configuration; the view index mirrors every commit
	st := store.New(storage.Backend, loggerClient)
	sess := session.New(st, loggerClient)
	views := index.NewViewIndex()
	views.Attach(sess)
	sess.Init(context.Background())

	// Wallpaper proxy, cached per day in the storage cache
	bing := wallpaper.NewClient(nil, wallpaper.WithFeedURL(cfg.BingFeedURL))
	resolver := wallpaper.NewResolver(bing, storage.Cache, cfg.WallpaperTTL, loggerClient)
	wallpaperTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewWallpaperRefresher(resolver, loggerClient, cfg.WallpaperEvery, time.Now, wallpaperTrigger)

	// Optional homepage import
	var reloader *scheduler.HomepageReloader
	var homepageTrigger chan struct{}
	if cfg.HomepageEnabled() {
		loggerClient.Info("homepage files configured, links will be imported",
			logger.String("services", cfg.ServicesFile),
			logger.String("bookmarks", cfg.BookmarksFile))
		homepageTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewHomepageReloader(
			homepage.Source{ServicesPath: cfg.ServicesFile, BookmarksPath: cfg.BookmarksFile},
			sess,
			loggerClient,
			cfg.ReloadInterval,
			homepageTrigger,
		)
	} else {
		loggerClient.Info("homepage files not configured, import disabled")
	}

	d := deps.Deps{
		Logger:                  loggerClient,
		StartTime:               time.Now(),
		Version:                 version.Version,
		Commit:                  version.Commit,
		BuildDate:               version.BuildDate,
		GoVersion:               version.GoVersion,
		TimeNow:                 time.Now,
		AllowedHosts:            cfg.AllowedHosts,
		AllowedCIDRS:            cfg.AllowedCIDRS,
		TrustProxy:              cfg.TrustProxy,
		Session:                 sess,
		Views:                   views,
		Store:                   st,
		StorageKind:             storage.Kind,
		Bing:                    bing,
		Wallpapers:              resolver,
		Prober:                  probe.New(probe.WithTimeout(cfg.StatusTimeout)),
		StatusRateBurst:         cfg.StatusRateBurst,
		StatusRatePerMin:        cfg.StatusRatePerMin,
		HomeURL:                 cfg.HomeURL,
		HomepageEnabled:         cfg.HomepageEnabled(),
		HomepageReloadTrigger:   homepageTrigger,
		WallpaperRefreshTrigger: wallpaperTrigger,
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		server:     httpserver.New(cfg, loggerClient, d),
		storage:    storage,
		session:    sess,
		reloader:   reloader,
		wallpapers: refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting dawnpage v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String("dawnpage"), logger.String("storage", a.storage.Kind))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start homepage reloader: %w", err)
		}
		a.logger.Info("homepage reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if err := a.wallpapers.Start(ctx); err != nil {
		return fmt.Errorf("failed to start wallpaper refresher: %w", err)
	}
	a.logger.Info("wallpaper refresher started",
		logger.Duration("interval", a.cfg.WallpaperEvery))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	a.wallpapers.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.storage.Close(); err != nil {
		a.logger.Warnf("failed to close %s storage: %v", a.storage.Kind, err)
	} else {
		a.logger.Info("✅ Storage closed cleanly")
	}

	_ = a.logger.Sync()
	a.logger.Info("✅ dawnpage stopped cleanly",
		logger.Uint64("revision", a.session.Revision()))
	return nil
}

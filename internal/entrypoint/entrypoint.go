package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/readingroom/internal/catalog"
	"github.com/mrlokans/readingroom/internal/config"
	"github.com/mrlokans/readingroom/internal/consolidate"
	"github.com/mrlokans/readingroom/internal/content"
	"github.com/mrlokans/readingroom/internal/database"
	"github.com/mrlokans/readingroom/internal/database/bookmarks"
	"github.com/mrlokans/readingroom/internal/database/progress"
	http_controllers "github.com/mrlokans/readingroom/internal/http"
	"github.com/mrlokans/readingroom/internal/scheduler"
	"github.com/mrlokans/readingroom/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener so no new task starts mid-shutdown.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// App holds everything the server owns for its lifetime.
type App struct {
	Router    *gin.Engine
	Catalog   *catalog.Catalog
	DB        *database.Database
	Tasks     *tasks.Client
	Scheduler *scheduler.ConsolidateScheduler

	cancelBackground context.CancelFunc
}

// NewApp loads the catalog, opens the database, starts the optional task
// queue and scheduler, and builds the router.
func NewApp(cfg *config.Config, version string) (*App, error) {
	cat, err := loadCatalog(cfg.Library.CatalogPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Catalog loaded from %s: %d categories, %d books",
		cfg.Library.CatalogPath, len(cat.ListCategories()), cat.BookCount())

	renderer, err := content.NewRenderer(cfg.Library.BooksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize content renderer: %w", err)
	}
	if _, err := os.Stat(renderer.Root()); err != nil {
		log.Printf("WARNING: books directory %s is not readable: %v", renderer.Root(), err)
	}

	db, err := database.NewDatabaseWithLogLevel(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{Catalog: cat, DB: db}

	backgroundCtx, cancel := context.WithCancel(context.Background())
	app.cancelBackground = cancel

	if cfg.Tasks.Enabled {
		if err := app.startTasks(backgroundCtx, cfg); err != nil {
			app.Close()
			return nil, err
		}
	}

	progressRepo := progress.NewRepository(db.DB)
	routerCfg := http_controllers.RouterConfig{
		Catalog:            cat,
		Content:            renderer,
		ProgressStore:      progressRepo,
		BookmarkStore:      bookmarks.NewRepository(db.DB),
		Database:           db,
		BookCounter:        cat,
		ProgressCounter:    progressRepo,
		StaticPath:         cfg.Library.StaticPath,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		Version:            version,
	}
	// Assigning nil pointers would make non-nil interfaces.
	if app.Tasks != nil {
		routerCfg.TaskQueue = app.Tasks
	}
	if app.Scheduler != nil {
		routerCfg.Scheduler = app.Scheduler
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

func (a *App) startTasks(ctx context.Context, cfg *config.Config) error {
	taskCfg := tasks.Config{
		Workers:         cfg.Tasks.Workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
	}

	client, err := tasks.NewClient(cfg.Database.Path, taskCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize task queue: %w", err)
	}
	a.Tasks = client

	opts := consolidate.DefaultOptions(cfg.Consolidate.SourceDir, cfg.ConsolidateOutputDir())
	opts.MoveWaste = cfg.Consolidate.MoveWaste
	client.Register(tasks.NewConsolidateLibraryQueue(consolidate.NewConsolidator(opts)))

	go client.Start(ctx)

	a.Scheduler = scheduler.NewConsolidateScheduler(client, cfg.Consolidate.Schedule, cfg.Consolidate.Enabled)
	if err := a.Scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start consolidation scheduler: %w", err)
	}
	return nil
}

// Shutdown stops the scheduler and waits for running tasks.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
	if a.cancelBackground != nil {
		a.cancelBackground()
	}
}

// Close releases the databases. Call after Shutdown.
func (a *App) Close() {
	if a.cancelBackground != nil {
		a.cancelBackground()
	}
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}

// loadCatalog treats a missing catalog file as an empty library so the
// server can start before the first consolidation run.
func loadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: catalog %s not found, serving an empty library", path)
		return catalog.New(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting reading room v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	Serve(app.Router, cfg, app.Shutdown)
}

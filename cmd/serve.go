package cmd

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

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/api"
	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/database"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/killallgit/labeler/internal/services/autosave"
	"github.com/killallgit/labeler/internal/services/catalog"
	"github.com/killallgit/labeler/internal/services/cleanup"
	"github.com/killallgit/labeler/internal/services/export"
	"github.com/killallgit/labeler/internal/services/media"
	"github.com/killallgit/labeler/internal/services/videos"
	"github.com/killallgit/labeler/pkg/config"
	"github.com/killallgit/labeler/pkg/ffmpeg"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the Labeler API server with the configured settings.

The server holds one annotation session. Open a video, then drive the
timeline with the /api/v1/session endpoints. Changes are autosaved after
every edit and on a fixed interval.

Example:
  labeler serve
  labeler serve --port 9090
  labeler serve --host 0.0.0.0 --port 8080`,
		RunE: runServer,
	}

	// Server flags
	cmd.Flags().String("host", "", "server host (overrides config)")
	cmd.Flags().Int("port", 0, "server port (overrides config)")
	return cmd
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Use config values if flags not provided
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	srv := api.NewServer(cfg)
	srv.SetDependencies(a.deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Labeler server is ready to handle requests at %s", srv.Addr())

	// Wait for interrupt signal or server error
	select {
	case <-ctx.Done():
		log.Println("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
		log.Println("[INFO] Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return err
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// pruneInterval is how often stale autosaves are looked for
const pruneInterval = time.Hour

// app owns the long-lived services behind the server
type app struct {
	deps      *types.Dependencies
	scheduler *autosave.Scheduler
	pruner    *cleanup.Service
	saveNow   func()
	cancel    context.CancelFunc
}

// newApp builds the session and everything hanging off it. Optional parts
// (registry, probe, watcher) are logged and left out when they fail.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{cancel: cancel}

	session := annotations.NewSession()
	deps := &types.Dependencies{
		Session:       session,
		DisableAlerts: cfg.Catalog.DisableAlerts,
		Version:       Version,
	}
	a.deps = deps

	if cfg.Database.Path != "" {
		db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			a.close()
			return nil, err
		}
		deps.DB = db
		if err := db.Migrate(); err != nil {
			a.close()
			return nil, err
		}
		deps.Videos = videos.NewService(videos.NewRepository(db.DB))
		deps.Hooks = append(deps.Hooks, videos.CountHook(deps.Videos))
	}

	if cfg.Autosave.Enabled {
		manager, err := autosave.NewManager(cfg.Autosave.ResolvedDir())
		if err != nil {
			a.close()
			return nil, err
		}
		deps.Autosave = manager
		deps.Hooks = append(deps.Hooks, manager.Hook())
		a.saveNow = manager.SessionSaver(session)
		a.scheduler = autosave.NewScheduler(cfg.Autosave.Interval, a.saveNow)
		a.scheduler.Start(ctx)
		log.Printf("[INFO] Autosaving to %s", manager.Dir())

		if cfg.Autosave.MaxAge > 0 {
			a.pruner = cleanup.NewService(manager.Dir(), autosave.FileSuffix, cfg.Autosave.MaxAge, pruneInterval)
			a.pruner.Start(ctx)
		}
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		a.close()
		return nil, err
	}
	deps.Catalog = cat

	sink, err := export.NewSink(ctx, cfg.Export)
	if err != nil {
		a.close()
		return nil, err
	}
	deps.Exporter = export.NewExporter()
	deps.Sink = sink

	probe := ffmpeg.New(cfg.Processing.FFprobePath, cfg.Processing.FFprobeTimeout)
	if err := probe.ValidateBinaries(); err != nil {
		log.Printf("[WARN] Video durations unavailable: %v", err)
	} else {
		deps.Probe = probe
	}

	if cfg.Watch.Enabled {
		watcher, err := media.NewWatcher(cfg.Watch.Debounce, media.SessionHashUpdater(session))
		if err != nil {
			log.Printf("[WARN] Video file watching disabled: %v", err)
		} else {
			deps.Watcher = watcher
			go func() {
				if err := watcher.Run(ctx); err != nil {
					log.Printf("[ERROR] Video watcher stopped: %v", err)
				}
			}()
		}
	}

	return a, nil
}

// close stops background work, writes a final snapshot and releases
// resources
func (a *app) close() {
	if a.pruner != nil {
		a.pruner.Stop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.saveNow != nil {
		a.saveNow()
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.deps == nil {
		return
	}
	if a.deps.Watcher != nil {
		if err := a.deps.Watcher.Close(); err != nil {
			log.Printf("[WARN] Failed to close video watcher: %v", err)
		}
	}
	if a.deps.DB != nil {
		if err := a.deps.DB.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}
}

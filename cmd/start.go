package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"livery-audit/core/loader"
	"livery-audit/core/logger"
	"livery-audit/core/middleware/auth"
	"livery-audit/core/middleware/rayid"
	"livery-audit/core/reconcile"
	"livery-audit/core/server"
	"livery-audit/feature/audit"
	"livery-audit/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the livery audit server",
	Long: `Starts the HTTP server and initializes all enabled features.

Installation roots come from INSTALL_ROOTS; scans are reused for
INSTALL_CACHE_TTL_SECONDS. Requests need the X-API-Key header when
SERVER_API_KEY is set.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	// 1. Configuration and logger
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.log.Sync()
	cfg, logg := e.cfg, e.log

	roots, err := e.installRoots(nil)
	if err != nil {
		return err
	}

	// 2. Audit history (optional)
	history := e.history()

	// 3. Audit service with a shared installation cache
	svc, err := e.service(roots, reconcile.NewCache(cfg.Install.CacheTTL()), history)
	if err != nil {
		return err
	}

	app, loaded, err := newApp(cfg.Server, svc, history, logg)
	if err != nil {
		return err
	}
	if cfg.Server.ApiKey == "" {
		logg.Warn("SERVER_API_KEY is empty, the API is not protected")
	}

	// 4. Serve until interrupted
	listenErr := make(chan error, 1)
	go func() {
		logg.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.Strings("features", loaded),
			zap.Strings("roots", roots),
			zap.Bool("history", history.Enabled()),
		)
		listenErr <- app.Listen(cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return err
	case <-quit:
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout())
}

// newApp builds the fiber app with its middleware and every feature loaded.
// It returns the names of the loaded features.
func newApp(cfg server.Config, svc *audit.Service, history *audit.History, logg *zap.Logger) (*fiber.App, []string, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
		BodyLimit:             cfg.BodyLimit(),
	})

	mgr := loader.NewManager()
	mgr.Register(audit.NewFeature(svc))
	mgr.Register(integrity.NewFeature(svc.Roots(), svc.Client(), history.DB(), logg))

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	})
	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, nil, err
	}
	return app, loaded, nil
}

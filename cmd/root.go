package cmd

import (
	"context"
	"fmt"
	"os"

	"livery-audit/core/config"
	"livery-audit/core/database"
	"livery-audit/core/logger"
	"livery-audit/core/reconcile"
	"livery-audit/core/storage"
	"livery-audit/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// verbose counts -v flags: debug once, trace twice.
	verbose int
	// colorFlag overrides the configured color mode.
	colorFlag string
	// configDir holds the .env file.
	configDir string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "livery-audit",
	Short: "Check that a mission's liveries are installed",
	Long: `livery-audit reads the liveries a DCS mission assigns to its units and
checks them against the liveries folders of a simulator installation.

Missions are .miz archives or bare mission scripts, local or s3://bucket/key.
Installation roots are directories or s3://bucket/prefix mirrors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := logger.ParseColorMode(colorFlag); err != nil {
			return NewExitError(err, ExitFailure)
		}
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	code := ExitCodeFromError(err)

	// Report with a console logger even when config loading failed
	cfg := logger.Config{Level: "info", Format: "console", Color: colorFlag}
	if _, colorErr := logger.ParseColorMode(colorFlag); colorErr != nil {
		cfg.Color = string(logger.ColorNever)
	}
	l, logErr := logger.New(&cfg)
	if logErr != nil {
		// Absolute fallback if logger creation fails (rare)
		fmt.Fprintln(os.Stderr, "Error:", err)
		return code
	}
	defer l.Sync()

	if code == ExitUnmet {
		for _, e := range multierr.Errors(err) {
			l.Error("Unmet livery requirement", zap.String("error", e.Error()))
		}
		return code
	}
	l.Error("command failed", zap.Error(err))
	return code
}

func init() {
	RootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	RootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color output: auto, always or never (default from LOG_COLOR)")
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}

// env is the configuration and logger shared by every command.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	colors logger.ColorMode
}

// setup loads the configuration, applies the persistent flags and builds
// the logger.
func setup() (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Log = cfg.Log.WithVerbosity(verbose)
	if colorFlag != "" {
		cfg.Log.Color = colorFlag
	}
	colors, err := logger.ParseColorMode(cfg.Log.Color)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	return &env{cfg: cfg, log: l, colors: colors}, nil
}

// storageClient creates a storage client when one of paths needs it.
func (e *env) storageClient(paths ...string) (storage.Client, error) {
	if !storage.AnyURL(paths...) {
		return nil, nil
	}
	return storage.NewClient(e.cfg.Storage)
}

// history opens the audit history when a database is configured.
// Connection failures only disable history.
func (e *env) history() *audit.History {
	if !e.cfg.Database.Enabled() {
		return nil
	}

	db, err := database.Connect(e.cfg.Database)
	if err != nil {
		e.log.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}

	h := audit.NewHistory(db)
	if err := h.Prepare(e.cfg.Database.AutoMigrate); err != nil {
		e.log.Warn("Audit history unavailable", zap.Error(err))
		return nil
	}
	e.log.Debug("Recording audit history", zap.String("driver", e.cfg.Database.Driver))
	return h
}

// service builds an audit service over roots. Storage is only configured
// when a root or the extra paths point at a bucket.
func (e *env) service(roots []string, cache *reconcile.Cache, history *audit.History, extra ...string) (*audit.Service, error) {
	client, err := e.storageClient(append(append([]string{}, roots...), extra...)...)
	if err != nil {
		return nil, err
	}
	return audit.NewService(roots, client, cache, history, e.log), nil
}

// installRoots returns the roots given on the command line, or the
// configured ones.
func (e *env) installRoots(flagRoots []string) ([]string, error) {
	roots := flagRoots
	if len(roots) == 0 {
		roots = e.cfg.Install.Roots
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no installation root: pass --install-root or set INSTALL_ROOTS")
	}
	return roots, nil
}

// commandContext is the context of a CLI run.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

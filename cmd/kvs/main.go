package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heysubinoy/kvs/internal/logging"
	"github.com/heysubinoy/kvs/internal/persist"
	"github.com/heysubinoy/kvs/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds what a single invocation needs. Every command gets a fresh one.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	files  *persist.FileStore
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kvs",
		Short: "A local key-value store",
		Long: `kvs keeps string keys and values in a single file in your
local data directory. Every invocation loads the file, runs one command
and writes the file back when the command changes it.

Environment variables:
  KVS_CONFIG      path to a YAML config file (same as --config)
  KVS_DATA_DIR    directory holding the kvs-store file
  KVS_LOG_LEVEL   debug, info, warn or error (default: warn)
  KVS_LOG_FORMAT  console or json (default: console)`,
		Version: version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !usesStore(cmd) {
				return nil
			}
			// Arguments are valid by now; runtime failures should not print usage.
			cmd.SilenceUsage = true
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("a command is required")
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("KVS_CONFIG"), "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newClearCmd(a),
	)
	return rootCmd
}

// storeAnnotation marks commands that read or write the store file.
const storeAnnotation = "kvs/store"

func usesStore(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[storeAnnotation]
	return ok
}

// init loads configuration, builds the logger and resolves the store file.
func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.verbose)
		if err != nil {
			return err
		}
		a.logger = logger
	}

	path, err := storePath(cfg)
	if err != nil {
		return err
	}
	a.files = persist.NewFileStore(path, persist.WithLogger(a.logger))
	a.logger.Debug("store path resolved", zap.String("path", path))
	return nil
}

func storePath(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Join(cfg.DataDir, persist.FileName), nil
	}
	return persist.ResolvePath()
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

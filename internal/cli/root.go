// Package cli wires configuration, logging, the cache and the catalog client
// into cobra commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mmcdole/zenkai/internal/cache"
	"github.com/mmcdole/zenkai/internal/catalog"
	"github.com/mmcdole/zenkai/internal/config"
	"github.com/mmcdole/zenkai/internal/dragonball"
	"github.com/mmcdole/zenkai/internal/log"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive browser.
func NewRootCmd(version string) *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          "zenkai",
		Short:        "Browse the Dragon Ball catalogs from the terminal",
		Long:         "zenkai browses characters, planets and transformations from the Dragon Ball API.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return fmt.Errorf("the interactive browser needs a terminal; try %q", "zenkai list characters")
			}
			return withApp(v, func(a *app) error {
				return a.runTUI(cmd.Context(), version)
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/zenkai/config.yaml)")
	flags.String("base-url", "", "catalog API base URL")
	flags.Int("page-size", 0, "records per page")
	flags.String("cache-dir", "", "parent directory of the session cache; empty keeps it in memory")
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")

	_ = v.BindPFlag("api.base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("browse.page_size", flags.Lookup("page-size"))
	_ = v.BindPFlag("cache.dir", flags.Lookup("cache-dir"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	cmd.AddCommand(
		newListCmd(v),
		newSearchCmd(v),
		newShowCmd(v),
		newConfigCmd(v),
	)
	return cmd
}

// app holds the collaborators every command needs
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	cache    *cache.Cache
	registry *catalog.Registry
}

// withApp loads configuration, builds the app and releases it after fn
func withApp(v *viper.Viper, fn func(a *app) error) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	c, err := cache.Open(cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close cache", "error", err)
		}
	}()

	client := dragonball.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	return fn(&app{
		cfg:      cfg,
		logger:   logger,
		cache:    c,
		registry: catalog.NewDefaultRegistry(client, catalog.WithLogger(logger)),
	})
}

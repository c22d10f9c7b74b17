package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terraconstructs/tasklists/cmd/cmdutil"
	"github.com/terraconstructs/tasklists/cmd/users"
	"github.com/terraconstructs/tasklists/internal/config"
	"github.com/terraconstructs/tasklists/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tasklistsapi",
	Short: "Task lists API server",
	Long: `Task lists API server provides shared task lists with role-based access.
It exposes the list, sharing and task operations as Connect RPC procedures.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.LogLevel
		if cfg.Debug {
			level = logrus.DebugLevel.String()
		}
		logger, err = logging.New(level, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}

		cmd.SetContext(cmdutil.WithRuntime(cmd.Context(), &cmdutil.Runtime{Config: cfg, Logger: logger}))
		return nil
	},
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	flags.String("db-url", "", "Database connection URL (env: TASKLISTS_DATABASE_URL)")
	flags.String("server-addr", "", "Server bind address (env: TASKLISTS_SERVER_ADDR)")
	flags.Bool("debug", false, "Enable debug logging (env: TASKLISTS_DEBUG)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (env: TASKLISTS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (env: TASKLISTS_LOG_FORMAT)")

	bindFlag("database_url", "db-url")
	bindFlag("server_addr", "server-addr")
	bindFlag("debug", "debug")
	bindFlag("log_level", "log-level")
	bindFlag("log_format", "log-format")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kjess/corpora/config"
	"github.com/kjess/corpora/corpora"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *corpora.Client

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build information injected by the linker.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "corpora",
	Short: "A CLI for managing documents on a Corpora retrieval server",
	Long: `corpora is a CLI for a Corpora document retrieval server: upload and
manage documents and collections, run search and RAG queries (including
streamed generation), and inspect knowledge graphs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(ragCmd)
	rootCmd.AddCommand(selfupdateCmd)
}

// initializeApp initializes the configuration and the API client. Commands
// that talk to the server use it as their PreRunE.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	timeout := time.Duration(cfg.Server.TimeoutSecs) * time.Second
	client, err = corpora.NewClient(cfg.Server.URL, logger,
		corpora.WithTimeout(timeout),
		corpora.WithTelemetrySink(corpora.LogSink{Logger: logger}),
		corpora.WithUserAgent("corpora-cli/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create Corpora client: %w", err)
	}

	return nil
}

// ensureSession authenticates the client from the configured credentials.
// A configured access token takes precedence over email/password.
func ensureSession(ctx context.Context) error {
	switch {
	case cfg.Server.AccessToken != "":
		if _, err := client.LoginWithToken(ctx, cfg.Server.AccessToken); err != nil {
			return fmt.Errorf("configured access token rejected: %w", err)
		}
	case cfg.Server.Email != "":
		if err := client.Login(ctx, cfg.Server.Email, cfg.Server.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	default:
		return fmt.Errorf("no credentials configured: set server.access_token or server.email/password")
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !useColor,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// healthCmd checks server availability without authenticating.
var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check that the Corpora server is reachable",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Printf("✓ Server is up: %s\n", status.Message)
		return nil
	},
}

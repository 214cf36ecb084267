package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"wavplay.click/internal/config"
)

const Version = "1.3.0"

// CLI represents the command-line interface
type CLI struct {
	rootCmd       *cobra.Command
	configManager *config.ConfigManager
	fs            afero.Fs
}

// NewCLI creates a new CLI instance on the OS filesystem
func NewCLI() *CLI {
	return NewCLIWithFilesystem(afero.NewOsFs())
}

// NewCLIWithFilesystem creates a CLI instance reading audio files and
// configuration through the given filesystem
func NewCLIWithFilesystem(fs afero.Fs) *CLI {
	slog.Debug("creating new CLI instance")

	rootCmd := &cobra.Command{
		Use:   "wavplay",
		Short: "Streaming WAV player",
		Long:  "wavplay streams uncompressed PCM WAV files chunk by chunk to an audio sink, with runtime-adjustable volume.",
	}

	rootCmd.AddCommand(newPlayCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newVolumeCommand())
	rootCmd.AddCommand(newHistoryCommand())

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("volume", "", "Playback volume (0 to 100)")
	rootCmd.PersistentFlags().String("chunk-size", "", "Bytes read per streaming iteration")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
	rootCmd.RunE = runRootE

	return &CLI{
		rootCmd:       rootCmd,
		configManager: config.NewConfigManagerWithFilesystem(fs),
		fs:            fs,
	}
}

type cliContextKey struct{}

// contextWithCLI stores CLI instance in context for command handlers
func contextWithCLI(cli *CLI) context.Context {
	return context.WithValue(context.Background(), cliContextKey{}, cli)
}

// cliFromContext extracts CLI instance from context
func cliFromContext(ctx context.Context) *CLI {
	if cli, ok := ctx.Value(cliContextKey{}).(*CLI); ok {
		return cli
	}
	return nil
}

// runRootE handles the bare invocation: version flag or help
func runRootE(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetBool("version")
	if version {
		cmd.Printf("wavplay version %s\nStreaming WAV player\n", Version)
		return nil
	}
	return cmd.Help()
}

// loadAndValidateConfig loads configuration from flags and files, applies
// overrides in precedence order (flags > environment > file > defaults),
// and validates the result
func loadAndValidateConfig(cmd *cobra.Command, cli *CLI) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	volumeStr, _ := cmd.Flags().GetString("volume")
	chunkStr, _ := cmd.Flags().GetString("chunk-size")
	logLevel, _ := cmd.Flags().GetString("log-level")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = cli.configManager.LoadFromFile(configFile)
		if err != nil {
			slog.Warn("config file not found, using defaults", "file", configFile, "error", err)
			cfg = cli.configManager.GetDefaultConfig()
		}
	} else {
		cfg, err = cli.configManager.LoadConfig()
		if err != nil {
			cmd.PrintErrf("Error loading config: %v\n", err)
			slog.Error("config load failed", "error", err)
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	cfg = cli.configManager.ApplyEnvironmentOverrides(cfg)

	if volumeStr != "" {
		vol, err := strconv.Atoi(volumeStr)
		if err != nil {
			cmd.PrintErrf("Error: invalid volume value '%s': %v\n", volumeStr, err)
			slog.Error("invalid volume value", "value", volumeStr, "error", err)
			return nil, fmt.Errorf("invalid volume value '%s': %w", volumeStr, err)
		}
		cfg.Volume = vol
		slog.Debug("volume override applied", "value", vol)
	}

	if chunkStr != "" {
		chunk, err := strconv.Atoi(chunkStr)
		if err != nil {
			cmd.PrintErrf("Error: invalid chunk size '%s': %v\n", chunkStr, err)
			slog.Error("invalid chunk size value", "value", chunkStr, "error", err)
			return nil, fmt.Errorf("invalid chunk size '%s': %w", chunkStr, err)
		}
		cfg.ChunkSize = chunk
		slog.Debug("chunk size override applied", "value", chunk)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
		slog.Debug("log level override applied", "value", logLevel)
	}

	err = cli.configManager.ValidateConfig(cfg)
	if err != nil {
		cmd.PrintErrf("Error: invalid configuration: %v\n", err)
		slog.Error("config validation failed", "error", err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupLogging configures the default slog logger: stderr at the configured
// level, plus a rotating debug-level file when file logging is enabled
func setupLogging(cfg *config.Config, cm *config.ConfigManager, stderrWriter io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo // Default level if parsing fails
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderrWriter, &slog.HandlerOptions{Level: level}),
	}

	if cfg.FileLogging != nil && cfg.FileLogging.Enabled {
		logFilePath := cm.ResolveLogFilePath(cfg.FileLogging.Filename)

		fileWriter := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    cfg.FileLogging.MaxSizeMB,
			MaxBackups: cfg.FileLogging.MaxBackups,
			MaxAge:     cfg.FileLogging.MaxAgeDays,
			Compress:   cfg.FileLogging.Compress,
		}

		// The file gets everything regardless of the stderr level.
		handlers = append(handlers, slog.NewTextHandler(fileWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.Debug("file logging enabled", "path", logFilePath, "dir", filepath.Dir(logFilePath))
	}

	slog.SetDefault(slog.New(NewFanoutHandler(handlers...)))

	slog.Debug("logging setup completed",
		"stderr_level", level.String(),
		"handlers", len(handlers))
}

// Run executes the CLI with the given arguments and I/O streams
func (c *CLI) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	slog.Debug("CLI run started", "args", args)

	c.rootCmd.SetArgs(args[1:]) // Skip program name
	c.rootCmd.SetIn(stdin)
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)

	// Store CLI instance for access in command handlers
	c.rootCmd.SetContext(contextWithCLI(c))

	if err := c.rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		return 1
	}

	return 0
}

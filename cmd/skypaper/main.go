package main

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skypaper/internal/app"
	"skypaper/internal/config"
	"skypaper/internal/daycycle"
	"skypaper/internal/desktop"
	"skypaper/internal/weather"
)

var (
	configPath string
	colorMode  string
	dryRun     bool

	// logger is set once run has constructed it, so fatal errors surface
	// through the same sink as the rest of the output.
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skypaper",
	Short: "Set the desktop wallpaper to match the sky",
	Long: `skypaper picks a wallpaper for the current time of day, relative to
sunrise and sunset at your location, optionally filtered by the current
weather, and sets it as the desktop background.

It runs once and exits; point a timer (cron, launchd, systemd) at it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the config (default: <user config dir>/skypaper.yml)")
	rootCmd.Flags().StringVar(&colorMode, "color", "auto", "coloring: auto, never or always")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the chosen file instead of applying it")
}

func run(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = newLogger(colorMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// A .env file may carry the variable an env api_key source names.
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded .env")
	}

	path := configPath
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger.Info("Loaded " + path)

	var src weather.Source
	if cfg.OpenWeatherMap != nil {
		key, err := cfg.OpenWeatherMap.APIKey.Read()
		if err != nil {
			return err
		}
		httpClient := &http.Client{Timeout: 10 * time.Second}
		src = weather.NewClient(httpClient, key, logger)
	}

	a := &app.App{
		Config:  cfg,
		Solar:   daycycle.SunSource{},
		Weather: src,
		Sink:    desktop.OS{},
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:     time.Now,
		DryRun:  dryRun,
		Out:     os.Stdout,
		Log:     logger,
	}
	return a.Run(cmd.Context())
}

func newLogger(mode string) (*zap.Logger, error) {
	switch mode {
	case "auto", "never", "always":
	default:
		return nil, fmt.Errorf("invalid --color value %q, expected auto, never or always", mode)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if enableColor(mode) {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(core), nil
}

func enableColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		info, err := os.Stderr.Stat()
		return err == nil && info.Mode()&os.ModeCharDevice != 0
	}
}

// reportError emits a fatal error as an error-level log line, falling back
// to plain stderr when the logger never got built (e.g. a bad --color).
func reportError(log *zap.Logger, w io.Writer, err error) {
	if log != nil {
		log.Error(err.Error())
		_ = log.Sync()
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(logger, os.Stderr, err)
		os.Exit(1)
	}
}

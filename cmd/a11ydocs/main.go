package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/docs"
	"github.com/a11ykit/a11ydocs/pkg/webcomponents"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	projectDir string
	logLevel   string
	logJSON    bool
	noColor    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "a11ydocs",
		Short: "Accessibility documentation with live demos",
		Long: `a11ydocs serves markdown documentation pages that embed live
visibility widgets. Each widget shows what a hiding technique does to
an element and to the content after it.

  • serve the site with server-driven widgets over WebSocket
  • export a static copy that toggles without a server
  • publish the export to an S3-compatible bucket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				errors.DisableColors()
			}
			return setupLogging(logLevel, logJSON)
		},
	}

	root.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		initCmd(),
		serveCmd(),
		buildCmd(),
		publishCmd(),
		renderCmd(),
		versionCmd(),
	)
	return root
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(level string, asJSON bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return errors.New("E500").WithDetailf("--log-level %q is not a level.", level).
			WithSuggestion("Use debug, info, warn or error")
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if asJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadProject reads the configuration and opens the site.
func loadProject() (*config.Config, *docs.Site, error) {
	cfg, err := config.LoadOrDefault(projectDir)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Content.LoaderURL != "" {
		webcomponents.SetLoaderURL(cfg.Content.LoaderURL)
	}

	site, err := docs.Open(cfg.ContentPath(), cfg.Content.Manifest)
	if err != nil {
		return nil, nil, err
	}
	return cfg, site, nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// formatBytes formats a size for humans.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

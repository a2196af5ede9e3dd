package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/internal/build"
	"github.com/a11ykit/a11ydocs/internal/config"
	"github.com/a11ykit/a11ydocs/pkg/docs"
)

func buildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		Long: `Render every page to static HTML.

Widgets in the export carry both of their states, so they still toggle
when the files are served without a11ydocs.

Examples:
  a11ydocs build
  a11ydocs build --output=public`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, site, err := loadProject()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = runBuild(ctx, cfg, site, output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from a11ydocs.json)")

	return cmd
}

func runBuild(ctx context.Context, cfg *config.Config, site *docs.Site, output string) (*build.Result, error) {
	fmt.Println("  Building static site...")
	fmt.Println()

	builder := build.New(cfg, site, build.Options{
		Output: output,
		OnProgress: func(step string) {
			info(step)
		},
	})

	result, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	success("Build complete in %s", result.Duration.Round(time.Millisecond))
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s/\n", result.Output)
	fmt.Printf("    ├── %d pages, %d widgets\n", len(result.Pages), result.Widgets)
	fmt.Printf("    ├── assets/client.js  (%s)\n", formatBytes(result.ClientSize))
	fmt.Printf("    └── %s\n", build.ManifestFile)
	fmt.Println()
	return result, nil
}

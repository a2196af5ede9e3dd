package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/pkg/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket    string
		prefix    string
		skipBuild bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build and upload the site to S3",
		Long: `Build the static site and upload it to an S3-compatible bucket.

Credentials are read from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  a11ydocs publish
  a11ydocs publish --bucket docs --prefix v2
  a11ydocs publish --skip-build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, site, err := loadProject()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Publish.Prefix = prefix
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := publish.NewS3Client(cfg.Publish)
			if err != nil {
				return err
			}
			p, err := publish.New(client, cfg.Publish)
			if err != nil {
				return err
			}

			output := cfg.OutputPath()
			if skipBuild {
				warn("Skipping build, uploading %s as is", output)
			} else if _, err := runBuild(ctx, cfg, site, output); err != nil {
				return err
			}

			info("Uploading to s3://%s/%s", cfg.Publish.Bucket, cfg.Publish.Prefix)
			report, err := p.Publish(ctx, output)
			if err != nil {
				return err
			}

			success("Uploaded %d files (%s)", len(report.Files), formatBytes(report.Bytes))
			if report.URL != "" {
				info(report.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket (default from a11ydocs.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Upload the existing output directory")

	return cmd
}

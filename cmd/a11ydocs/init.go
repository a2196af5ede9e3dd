package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template    string
		name        string
		description string
		bucket      string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new documentation site",
		Long: `Create a new documentation site in dir (default: the current directory).

Templates:
  minimal   One page with a single visibility widget
  hiding    A page per hiding technique, each with a live widget (default)

Examples:
  a11ydocs init
  a11ydocs init my-docs --template minimal
  a11ydocs init my-docs --name "Design system" --bucket docs-site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, template, templates.Config{
				SiteName:    name,
				Description: description,
				Bucket:      bucket,
			})
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "hiding", "Starter template ("+strings.Join(templates.List(), ", ")+")")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Site name (default: directory name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Site description")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket for a11ydocs publish")

	return cmd
}

func runInit(dir, templateName string, cfg templates.Config) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	files, err := tmpl.Create(abs, cfg)
	if err != nil {
		return err
	}

	success("Created %s site in %s", tmpl.Name, abs)
	for _, f := range files {
		rel, err := filepath.Rel(abs, f)
		if err != nil {
			rel = f
		}
		info("%s", rel)
	}
	fmt.Println()
	info("Next steps:")
	if dir != projectDir {
		info("  cd %s", dir)
	}
	info("  a11ydocs serve --watch")
	return nil
}

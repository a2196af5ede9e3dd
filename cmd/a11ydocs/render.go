package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a11ykit/a11ydocs/internal/errors"
	"github.com/a11ykit/a11ydocs/pkg/render"
	"github.com/a11ykit/a11ydocs/pkg/widget"
)

type renderOptions struct {
	attrs   widget.Attributes
	toggles int
	host    bool
	explain bool
}

func renderCmd() *cobra.Command {
	var (
		optionName        string
		classesToToggle   string
		attributeToToggle string
		opts              renderOptions
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the HTML of one widget",
		Long: `Render a single visibility widget and print its content.

Only the attributes given as flags are set, so defaults apply exactly as
they do for a tag in a page.

Examples:
  a11ydocs render --option-name Visibility --classes-to-toggle invisible
  a11ydocs render --attribute-to-toggle aria-hidden --toggles 1
  a11ydocs render --classes-to-toggle sr-only --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.attrs = widget.Attributes{}
			flags := cmd.Flags()
			if flags.Changed("option-name") {
				opts.attrs[widget.AttrOptionName] = optionName
			}
			if flags.Changed("classes-to-toggle") {
				opts.attrs[widget.AttrClassesToToggle] = classesToToggle
			}
			if flags.Changed("attribute-to-toggle") {
				opts.attrs[widget.AttrAttributeToToggle] = attributeToToggle
			}
			return runRender(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&optionName, "option-name", "", "Technique label")
	cmd.Flags().StringVar(&classesToToggle, "classes-to-toggle", "", "Space-separated classes applied while on")
	cmd.Flags().StringVar(&attributeToToggle, "attribute-to-toggle", "", "Boolean attribute applied while on")
	cmd.Flags().IntVarP(&opts.toggles, "toggles", "n", 0, "Click the button this many times first")
	cmd.Flags().BoolVar(&opts.host, "host", false, "Wrap the content in its host element")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Describe the configured techniques")

	return cmd
}

func runRender(out io.Writer, opts renderOptions) error {
	if opts.toggles < 0 {
		return errors.New("E500").WithDetailf("--toggles must not be negative, got %d.", opts.toggles)
	}

	w := widget.New("w0")
	w.Configure(opts.attrs)
	w.Mount()
	for i := 0; i < opts.toggles; i++ {
		w.Activate()
	}

	if opts.explain {
		explain(out, w)
	}
	if opts.host {
		fmt.Fprintln(out, render.String(w.Host()))
		return nil
	}
	fmt.Fprintln(out, w.HTML())
	return nil
}

// explain prints how the configured techniques affect the target.
func explain(out io.Writer, w *widget.Widget) {
	cfg := w.Config()
	fmt.Fprintf(out, "<!-- %s, state %s -->\n", widget.Label(cfg.OptionName, w.State()), w.State())
	techniques := cfg.Techniques()
	if len(techniques) == 0 {
		fmt.Fprintln(out, "<!-- no known technique configured -->")
		return
	}
	for _, t := range techniques {
		effects := []string{
			yesNo(t.Visible, "visible", "not visible"),
			yesNo(t.KeepsLayout, "keeps layout", "removed from layout"),
			yesNo(t.Announced, "announced", "not announced"),
		}
		fmt.Fprintf(out, "<!-- %s: %s -->\n", t.Name, strings.Join(effects, ", "))
	}
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

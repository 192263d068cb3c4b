package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/scan"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/tui"
)

func analyzeCmd(e *env) *cobra.Command {
	var format string
	var top int
	var dropSystem bool

	cmd := &cobra.Command{
		Use:   "analyze <path>...",
		Short: "Print every statistics table for one or more chat exports",
		Long: `Analyze WhatsApp .txt exports. A directory argument expands to the .txt files below it.

With a single file and a terminal on stdout, an interactive browser opens.
Otherwise the tables are printed in the chosen format:
  text      aligned tables with bars (default)
  markdown  GitHub-flavored markdown tables
  html      a standalone HTML page
  json      one JSON document per file`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scan.Resolve(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .txt exports found in %v", args)
			}

			opts := e.analysisOptions(dropSystem)
			ropts := e.renderOptions(top)
			tty := term.IsTerminal(int(os.Stdout.Fd()))

			for i, fi := range files {
				rep, err := analysis.AnalyzeFile(fi.Path, opts)
				if err != nil {
					return err
				}
				e.log.Debug().Str("file", fi.Path).Int("dropped_lines", rep.Dropped).Msg("analyzed")

				// Interactive TUI for a single file on a terminal
				if format == "" && tty && len(files) == 1 {
					return tui.Run(rep, ropts)
				}

				if i > 0 && (format == "" || format == "text") {
					fmt.Println()
				}
				if err := write(os.Stdout, format, rep, ropts, tty); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, html, json")
	cmd.Flags().IntVar(&top, "top", 0, "Rows in the emoji and word tables (0 = config)")
	cmd.Flags().BoolVar(&dropSystem, "drop-system", false, "Drop entries without a sender (group events)")

	return cmd
}

func write(w io.Writer, format string, rep *analysis.Report, opts render.Options, color bool) error {
	switch format {
	case "", "text":
		if len(rep.Meta.FilePath) > 0 {
			if color {
				fmt.Fprintf(w, "\033[2m== %s ==\033[0m\n", rep.Meta.FilePath)
			} else {
				fmt.Fprintf(w, "== %s ==\n", rep.Meta.FilePath)
			}
		}
		return render.Text(w, rep, opts, color)
	case "markdown", "md":
		return render.Markdown(w, rep, opts)
	case "html":
		return render.HTML(w, rep, opts)
	case "json":
		return render.JSON(w, rep, opts)
	default:
		return fmt.Errorf("unknown format %q (want text, markdown, html or json)", format)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd(e *env) *cobra.Command {
	var sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <path> <query>",
		Short: "Find messages containing every word of the query",
		Long: `Search the messages of one export. Output is TSV for fzf integration:
  record, line, date, sender, snippet

Recommended shell function (add to .zshrc):
  wcaf() {
    wca search "$1" "${@:2}" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview "wca preview '$1' --record {1} --context 5 --query {q}" \
      --preview-window=right:60%:wrap \
      --bind "enter:execute(wca open '$1' --record {1})"
  }`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := analysis.AnalyzeFile(args[0], e.analysisOptions(false))
			if err != nil {
				return err
			}

			opts := search.Options{
				Query:  strings.Join(args[1:], " "),
				Sender: sender,
				Limit:  limit,
			}
			if since != "" {
				opts.Since, err = time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("--since: %w", err)
				}
			}

			results := search.Search(rep.Records, opts)
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := r.Snippet
				date := r.Date.Format(time.DateOnly) + " " + r.Time
				name := r.Sender
				if color {
					snippet = colorizeSnippet(snippet)
					date = sColorDim + date + sColorReset
					name = sColorGreen + name + sColorReset
				} else {
					snippet = strings.NewReplacer(">>>", "", "<<<", "").Replace(snippet)
				}
				// first field (record) stays plain for fzf {1}
				fmt.Printf("%d\t%d\t%s\t%s\t%s\n", r.Index, r.Line, date, name, snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this member")
	cmd.Flags().StringVar(&since, "since", "", "Only messages on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}

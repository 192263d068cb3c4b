package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/scan"
)

func wordsCmd(e *env) *cobra.Command {
	var raw bool
	var top int

	cmd := &cobra.Command{
		Use:   "words <path>...",
		Short: "Print the most used words, or the raw lowercase word corpus",
		Long: `Print word frequencies of the text messages, stopwords removed, as TSV (word, count).
With --raw the lowercase corpus is printed instead, ready for a word-cloud tool.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scan.Resolve(args)
			if err != nil {
				return err
			}

			opts := e.analysisOptions(false)
			ropts := e.renderOptions(top)

			var corpora []string
			for _, fi := range files {
				rep, err := analysis.AnalyzeFile(fi.Path, opts)
				if err != nil {
					return err
				}
				if rep.Corpus != "" {
					corpora = append(corpora, rep.Corpus)
				}
			}

			combined := &analysis.Report{Corpus: strings.Join(corpora, " ")}
			if raw {
				fmt.Println(combined.Corpus)
				return nil
			}

			words := combined.Words(ropts.Stop, ropts.TopWords)
			if len(words) == 0 {
				fmt.Fprintln(os.Stderr, "No words found.")
				return nil
			}
			for _, w := range words {
				fmt.Printf("%s\t%d\n", w.Word, w.Count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the corpus instead of frequencies")
	cmd.Flags().IntVar(&top, "top", 0, "Max words (0 = config)")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
)

func previewCmd(e *env) *cobra.Command {
	var record int
	var context int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <path>",
		Short: "Print the conversation around a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := analysis.AnalyzeFile(args[0], e.analysisOptions(false))
			if err != nil {
				return err
			}
			if record >= len(rep.Records) {
				return fmt.Errorf("record %d out of range (chat has %d)", record, len(rep.Records))
			}

			out, _ := render.Conversation(rep.Records, render.ConversationOptions{
				Hit:     record,
				Context: context,
				Query:   query,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&record, "record", -1, "Record index to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after the record to show (-1 = all)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}

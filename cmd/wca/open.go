package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/open"
)

func openCmd(e *env) *cobra.Command {
	var record int

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open the export in $EDITOR at a message's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := 1
			if record >= 0 {
				rep, err := analysis.AnalyzeFile(args[0], e.analysisOptions(false))
				if err != nil {
					return err
				}
				if record >= len(rep.Records) {
					return fmt.Errorf("record %d out of range (chat has %d)", record, len(rep.Records))
				}
				line = rep.Records[record].Line
			}
			return open.AtLine(args[0], line)
		},
	}

	cmd.Flags().IntVar(&record, "record", -1, "Record index to jump to")

	return cmd
}

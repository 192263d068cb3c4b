package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/scan"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/store"
)

func exportCmd(e *env) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export <path>...",
		Short: "Write records and statistics tables into a SQLite database",
		Long: `Analyze exports and store every record and table in SQLite for other tools.
Files whose mtime, size and analysis settings are unchanged since the last
export are skipped. Chats whose export file was deleted are removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = e.cfg.DBPath
			}

			files, err := scan.Resolve(args)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			db, err := store.OpenDB(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Exporting %d file(s) to %s\n", len(files), dbPath)

			stats, err := store.ExportAll(db, files, e.analysisOptions(false), e.log)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default from config)")

	return cmd
}

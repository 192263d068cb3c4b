package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/store"
)

func listCmd(e *env) *cobra.Command {
	var records string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chats stored by export, most recent first",
		Long: `List chats stored by export, most recent first.
With --records, print the stored messages of one exported chat instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(e.cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, "No database yet (run 'wca export' first).")
				return nil
			}

			db, err := store.OpenDB(e.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if records != "" {
				return listRecords(os.Stdout, db, records)
			}

			chats, err := db.ListChats()
			if err != nil {
				return err
			}
			for _, c := range chats {
				fmt.Printf("%s\t%s\t%d\t%s\n", c.AnalyzedAt, c.RunID, c.Records, c.FilePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&records, "records", "", "Print the stored messages of the chat exported from this file")

	return cmd
}

func listRecords(w io.Writer, db *store.DB, path string) error {
	key := parse.ChatKey(path)
	info, err := db.GetChatInfo(key)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("%s has not been exported", path)
	}

	rows, err := db.GetRecords(key)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%d\t%s %s\t%s\t%s\n", r.RecordID, r.LineNumber, r.Date, r.Time, r.Sender, strings.ReplaceAll(r.Body, "\t", " "))
	}
	return nil
}

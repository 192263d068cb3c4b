package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/store"
)

func doctorCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: show config, emoji and stopword tables, and the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg

			fmt.Println("=== Config ===")
			if cfg.Path != "" {
				fmt.Printf("  File: %s (OK)\n", cfg.Path)
			} else {
				fmt.Println("  File: none (defaults)")
			}
			fmt.Printf("  Media placeholder: %q\n", cfg.MediaSentinel)
			fmt.Printf("  Link marker:       %q\n", cfg.LinkMarker)
			fmt.Printf("  Drop group events: %v\n", cfg.DropSystemEvents)

			fmt.Println("\n=== Tables ===")
			fmt.Printf("  Emoji sequences: %s\n", humanize.Comma(int64(features.DefaultEmojiSet().Len())))
			stop := stats.DefaultStoplist().With(cfg.ExtraStopwords...)
			fmt.Printf("  Stopwords:       %d (%d extra)\n", stop.Len(), len(cfg.ExtraStopwords))

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			info, err := os.Stat(cfg.DBPath)
			if os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'wca export' first)")
				return nil
			}
			if err != nil {
				return err
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chatCount, err := db.ChatCount()
			if err != nil {
				return fmt.Errorf("count chats: %w", err)
			}
			recordCount, err := db.RecordCount()
			if err != nil {
				return fmt.Errorf("count records: %w", err)
			}

			fmt.Printf("  Chats:   %d\n", chatCount)
			fmt.Printf("  Records: %d\n", recordCount)
			fmt.Printf("  Size:    %s\n", humanize.Bytes(uint64(info.Size())))
			return nil
		},
	}
}

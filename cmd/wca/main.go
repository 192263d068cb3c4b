package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/config"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/logging"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/render"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
)

var version = "dev"

// env is what every subcommand needs, set up once before it runs.
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	var (
		verbose    bool
		configPath string
		e          env
	)

	rootCmd := &cobra.Command{
		Use:           "wca",
		Short:         "WhatsApp chat analyzer - statistics from exported chat .txt files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFrom(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			e.cfg = cfg
			e.log = logging.New(cfg.LogLevel, verbose)
			if cfg.Path != "" {
				e.log.Debug().Str("path", cfg.Path).Msg("config loaded")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/wca/config.toml)")

	rootCmd.AddCommand(analyzeCmd(&e))
	rootCmd.AddCommand(wordsCmd(&e))
	rootCmd.AddCommand(searchCmd(&e))
	rootCmd.AddCommand(previewCmd(&e))
	rootCmd.AddCommand(openCmd(&e))
	rootCmd.AddCommand(exportCmd(&e))
	rootCmd.AddCommand(listCmd(&e))
	rootCmd.AddCommand(doctorCmd(&e))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (e *env) analysisOptions(dropSystem bool) analysis.Options {
	log := e.log
	return analysis.Options{
		Parse: parse.Options{
			DropSystemEvents: dropSystem || e.cfg.DropSystemEvents,
			Logger:           &log,
		},
		MediaSentinel: e.cfg.MediaSentinel,
		LinkMarker:    e.cfg.LinkMarker,
	}
}

// renderOptions uses the configured limits unless top is set (> 0).
func (e *env) renderOptions(top int) render.Options {
	opts := render.Options{
		TopEmojis: e.cfg.TopEmojis,
		TopWords:  e.cfg.TopWords,
		Stop:      stats.DefaultStoplist().With(e.cfg.ExtraStopwords...),
	}
	if top > 0 {
		opts.TopEmojis, opts.TopWords = top, top
	}
	return opts
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dtl2txt CLI. Run with a timeline
// file or folder (for example by dropping it on the binary) to convert it,
// or without arguments for an interactive menu.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/timeline-transcript/internal/catalog"
	"github.com/pdiddy/timeline-transcript/internal/convert"
	"github.com/pdiddy/timeline-transcript/internal/logging"
	"github.com/pdiddy/timeline-transcript/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the dtl2txt CLI.
var rootCmd = &cobra.Command{
	Use:   "dtl2txt [file.dtl | folder]",
	Short: "Convert Dialogic timelines into readable dialogue transcripts",
	Long: `dtl2txt converts Dialogic timeline files (.dtl) into plain-text
transcripts (.txt) written next to each source file, so dialogue flow can be
reviewed without opening the editor.

Pass a timeline file or a folder of timelines to convert it directly, or run
without arguments to choose from an interactive menu.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dtl2txt.yaml or ~/.config/dtl2txt/dtl2txt.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dtl2txt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dtl2txt"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("DTL2TXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("transcript.chapter_dir", filepath.Join("content", "timelines", "Chapter 2"))
	v.SetDefault("transcript.workers", 1)
	v.SetDefault("transcript.pause_on_exit", true)
	v.SetDefault("catalog.enabled", false)
	v.SetDefault("catalog.dir", ".dtl2txt")
	v.SetDefault("catalog.max_results", 20)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

func configFromViper(v *viper.Viper) types.AppConfig {
	return types.AppConfig{
		Transcript: types.TranscriptConfig{
			ChapterDir:  v.GetString("transcript.chapter_dir"),
			Workers:     v.GetInt("transcript.workers"),
			PauseOnExit: v.GetBool("transcript.pause_on_exit"),
		},
		Catalog: types.CatalogConfig{
			Enabled:    v.GetBool("catalog.enabled"),
			Dir:        v.GetString("catalog.dir"),
			MaxResults: v.GetInt("catalog.max_results"),
		},
		Log: types.LoggingConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}
}

// app holds the collaborators shared by every command.
type app struct {
	log       *slog.Logger
	converter *convert.Converter
	catalog   *catalog.Store
}

// newApp builds the converter and, when enabled, opens the catalog that
// records each successful conversion.
func newApp(cfg types.AppConfig, stderr io.Writer) (*app, error) {
	a := &app{log: logging.New(cfg.Log, stderr)}

	opts := convert.Options{
		Workers: cfg.Transcript.Workers,
		Logger:  a.log,
	}
	if cfg.Catalog.Enabled {
		store, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		a.catalog = store
		opts.OnConverted = store.Record
	}
	a.converter = convert.New(opts)
	return a, nil
}

func (a *app) Close() {
	if a.catalog != nil {
		if err := a.catalog.Close(); err != nil {
			a.log.Warn("closing catalog", "error", err)
		}
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := configFromViper(viper.GetViper())
	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	sh := newShell(cmd.InOrStdin(), cmd.OutOrStdout(), a.converter, cfg.Transcript)
	sh.banner()
	if len(args) == 1 {
		sh.runPath(cmd.Context(), args[0])
	} else {
		sh.runMenu(cmd.Context())
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

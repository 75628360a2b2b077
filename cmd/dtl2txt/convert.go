// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.dtl | folder>...",
	Short: "Convert timeline files or folders without prompting",
	Long: `Convert transforms each timeline file into a transcript written next to
it with a .txt extension. Folder arguments convert every .dtl file directly
inside the folder. A failure on one file does not stop the others; the
command exits non-zero if any conversion failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Int("workers", 0, "number of files converted concurrently (default from config)")
	convertCmd.Flags().Bool("catalog", false, "record conversions in the catalog")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := configFromViper(viper.GetViper())
	if cmd.Flags().Changed("workers") {
		cfg.Transcript.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog.Enabled, _ = cmd.Flags().GetBool("catalog")
	}

	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var (
		files  []string
		failed int
	)
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			files = append(files, p)
			continue
		}
		result, err := a.converter.ConvertFolder(ctx, p, out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			failed++
			continue
		}
		failed += result.Failed
	}

	if len(files) > 0 {
		result := a.converter.ConvertPaths(ctx, files, out)
		failed += result.Failed
	}

	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

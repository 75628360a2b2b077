// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/timeline-transcript/internal/catalog"
)

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search dialogue recorded in the catalog",
	Long: `Search finds dialogue lines from converted timelines. Text matches
case-insensitively anywhere in a line; --character and --timeline narrow the
results. Only conversions run with the catalog enabled are searchable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := configFromViper(viper.GetViper())
	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalog.QueryOptions{}
	if len(args) == 1 {
		opts.Query = args[0]
	}
	opts.Character, _ = cmd.Flags().GetString("character")
	opts.Timeline, _ = cmd.Flags().GetString("timeline")
	opts.MaxResults, _ = cmd.Flags().GetInt("max-results")
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --character, or --timeline")
	}

	matches, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), matches, jsonOutput)
}

func formatSearchOutput(w io.Writer, matches []catalog.Match, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-5s  %-15s  %s\n", "Timeline", "Line", "Character", "Text")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range matches {
		fmt.Fprintf(w, "%-20s  %-5d  %-15s  %s\n",
			truncate(m.Timeline, 20), m.Ordinal, truncate(m.Character, 15), m.Text)
	}
	fmt.Fprintf(w, "\n%d results\n", len(matches))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes every cataloged timeline, with its dialogue lines, to
<catalog dir>/export.yaml or export.json, or to the path given by --output.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	cfg := configFromViper(viper.GetViper())
	store, err := catalog.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), output)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func init() {
	searchCmd.Flags().String("character", "", "filter by speaking character")
	searchCmd.Flags().String("timeline", "", "filter by timeline name (file name without extension)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("output", "", "export file path (default: <catalog dir>/export.<format>)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
}

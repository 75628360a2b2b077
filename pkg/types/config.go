// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TranscriptConfig holds settings for timeline conversion.
type TranscriptConfig struct {
	// ChapterDir is the folder converted by the "chapter" menu option
	// (default "content/timelines/Chapter 2").
	ChapterDir string `json:"chapter_dir" yaml:"chapter_dir"`

	// Workers bounds concurrent conversions in folder mode (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// PauseOnExit waits for Enter before the interactive shell exits, so a
	// console window opened by drag and drop stays readable.
	PauseOnExit bool `json:"pause_on_exit" yaml:"pause_on_exit"`
}

// CatalogConfig holds settings for the conversion catalog.
type CatalogConfig struct {
	// Enabled records every successful conversion in the catalog.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding catalog.db and exports (default ".dtl2txt").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default "warn").
	Level string `json:"level" yaml:"level"`

	// Format selects the stderr handler: text or json.
	Format string `json:"format" yaml:"format"`

	// File, when set, also writes JSON records to a rotated log file.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// AppConfig groups all configuration for the CLI.
type AppConfig struct {
	Transcript TranscriptConfig `json:"transcript" yaml:"transcript"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
	Log        LoggingConfig    `json:"log" yaml:"log"`
}

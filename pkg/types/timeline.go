// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one timeline.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// DialogueLine is one spoken line recovered from a timeline.
type DialogueLine struct {
	// Ordinal is the 1-based source line number.
	Ordinal int `json:"ordinal" yaml:"ordinal"`

	Character string `json:"character" yaml:"character"`

	// Text is the spoken text with inline markup removed.
	Text string `json:"text" yaml:"text"`
}

// Timeline holds the result of converting one timeline file.
type Timeline struct {
	// Name is the source file name without extension.
	Name string `json:"name" yaml:"name"`

	SourcePath string `json:"source_path" yaml:"source_path"`
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// LinesRead counts raw source lines, including blank ones.
	LinesRead int `json:"lines_read" yaml:"lines_read"`

	// Fragments counts the rendered fragments written after the header.
	Fragments int `json:"fragments" yaml:"fragments"`

	Dialogue []DialogueLine `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`

	ConvertedAt time.Time        `json:"converted_at" yaml:"converted_at"`
	Status      ConversionStatus `json:"status" yaml:"status"`
}

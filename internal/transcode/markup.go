// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcode

import "regexp"

var (
	colorOpenTag  = regexp.MustCompile(`\[color=#[0-9a-fA-F]+\]`)
	colorCloseTag = regexp.MustCompile(`\[/color\]`)
	emphasisTag   = regexp.MustCompile(`\[/?[ib]\]`)
	anyTag        = regexp.MustCompile(`\[/?[^\]]+\]`)
)

// StripMarkup removes inline styling tags from text and keeps the text they
// wrap. Color, italic, and bold pairs are removed first; any other
// bracketed tag token is then dropped on its own. A "[" with no closing
// "]" is left untouched.
func StripMarkup(text string) string {
	text = colorOpenTag.ReplaceAllString(text, "")
	text = colorCloseTag.ReplaceAllString(text, "")
	text = emphasisTag.ReplaceAllString(text, "")
	return anyTag.ReplaceAllString(text, "")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcode

import "strings"

// Dialogue is a spoken line split into speaker and cleaned text.
type Dialogue struct {
	Character string
	Text      string
}

// ParseDialogue splits a dialogue line on its first colon. The character
// name loses surrounding quotes and the text loses inline markup. ok is
// false when the line does not classify as KindDialogue.
func ParseDialogue(line string) (d Dialogue, ok bool) {
	line = strings.TrimSpace(line)
	if Classify(line) != KindDialogue {
		return Dialogue{}, false
	}
	return splitDialogue(line), true
}

func splitDialogue(line string) Dialogue {
	character, text, _ := strings.Cut(line, ":")
	return Dialogue{
		Character: strings.Trim(strings.TrimSpace(character), `"`),
		Text:      StripMarkup(strings.TrimSpace(text)),
	}
}

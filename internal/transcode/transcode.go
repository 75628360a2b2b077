// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcode rewrites single lines of a Dialogic timeline (.dtl) into
// annotated plain text. Each line is classified by an ordered rule table and
// rendered by the handler of the first rule that matches. The package holds
// no state between lines.
package transcode

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the shape of a timeline line.
type Kind int

const (
	KindEmpty Kind = iota
	KindBackground
	KindJoin
	KindLeave
	KindDialogue
	KindSignal
	KindChoice
	KindLabel
	KindJump
	KindVariableSet
	KindConditional
	KindNarrative
	KindUnrecognized
)

var kindNames = [...]string{
	KindEmpty:        "empty",
	KindBackground:   "background",
	KindJoin:         "join",
	KindLeave:        "leave",
	KindDialogue:     "dialogue",
	KindSignal:       "signal",
	KindChoice:       "choice",
	KindLabel:        "label",
	KindJump:         "jump",
	KindVariableSet:  "set",
	KindConditional:  "conditional",
	KindNarrative:    "narrative",
	KindUnrecognized: "unrecognized",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Rule pairs a line predicate with the renderer used when it matches.
// Both receive the line already trimmed of surrounding whitespace.
type Rule struct {
	Kind   Kind
	Match  func(line string) bool
	Render func(line string) string
}

// rules is evaluated top to bottom; the first match wins. A rule that
// matches but cannot extract what it needs renders "" rather than falling
// through to a later rule.
var rules = []Rule{
	{KindEmpty, func(l string) bool { return l == "" }, func(string) string { return "" }},
	{KindBackground, hasPrefix("[background"), renderBackground},
	{KindJoin, hasPrefix("join "), renderJoin},
	{KindLeave, hasPrefix("leave "), renderLeave},
	{KindDialogue, isDialogue, renderDialogue},
	{KindSignal, hasPrefix("[signal"), renderSignal},
	{KindChoice, hasPrefix("-"), renderChoice},
	{KindLabel, hasPrefix("label "), renderLabel},
	{KindJump, hasPrefix("jump "), renderJump},
	{KindVariableSet, hasPrefix("set {"), renderVariableSet},
	{KindConditional, isConditional, renderConditional},
	{KindNarrative, isNarrative, renderNarrative},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the kind of the first rule matching line. Lines no rule
// accepts (bracketed directives other than background and signal) are
// KindUnrecognized.
func Classify(line string) Kind {
	_, kind := match(strings.TrimSpace(line))
	return kind
}

// Transcode renders one raw timeline line. An empty result means the line is
// suppressed from the transcript. Transcode is total: every input yields
// some string.
func Transcode(line string) string {
	line = strings.TrimSpace(line)
	r, _ := match(line)
	if r == nil {
		return ""
	}
	return r.Render(line)
}

// TranscodeLines renders lines in order and drops suppressed fragments.
func TranscodeLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if frag := Transcode(l); frag != "" {
			out = append(out, frag)
		}
	}
	return out
}

func match(line string) (*Rule, Kind) {
	for i := range rules {
		if rules[i].Match(line) {
			return &rules[i], rules[i].Kind
		}
	}
	return nil, KindUnrecognized
}

func hasPrefix(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

func isDialogue(line string) bool {
	return strings.Contains(line, ":") && !strings.HasPrefix(line, "[")
}

func isConditional(line string) bool {
	return strings.HasPrefix(line, "if ") ||
		strings.HasPrefix(line, "elif ") ||
		strings.HasPrefix(line, "else")
}

func isNarrative(line string) bool {
	return !strings.HasPrefix(line, "[") && !strings.Contains(line, ":")
}

var (
	argAttr   = regexp.MustCompile(`arg="([^"]+)"`)
	joinName  = regexp.MustCompile(`join ([^\s(]+)`)
	leaveName = regexp.MustCompile(`leave (\S+)`)
)

// attr returns the quoted value of the arg attribute, if present.
func attr(line string) (string, bool) {
	m := argAttr.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// sceneName turns a background path into its display name: the base name
// with .png and .jpg removed, upper-cased.
func sceneName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	path = strings.ReplaceAll(path, ".png", "")
	path = strings.ReplaceAll(path, ".jpg", "")
	return strings.ToUpper(path)
}

func renderBackground(line string) string {
	bg, ok := attr(line)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\n[SCENE: %s]\n", sceneName(bg))
}

func renderJoin(line string) string {
	m := joinName.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("[%s enters]", strings.Trim(m[1], `"`))
}

func renderLeave(line string) string {
	if strings.Contains(line, "--All--") {
		return "[Everyone leaves]"
	}
	m := leaveName.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("[%s leaves]", strings.Trim(m[1], `"`))
}

func renderDialogue(line string) string {
	d := splitDialogue(line)
	return fmt.Sprintf("\n%s: %s", d.Character, d.Text)
}

func renderSignal(line string) string {
	arg, ok := attr(line)
	if !ok {
		return ""
	}
	switch {
	case strings.Contains(arg, "start_minigame"):
		return fmt.Sprintf("\n[MINIGAME: %s]\n", strings.ReplaceAll(arg, "start_minigame ", ""))
	case strings.Contains(arg, "unlock_evidence"):
		return fmt.Sprintf("\n[EVIDENCE UNLOCKED: %s]\n", strings.ReplaceAll(arg, "unlock_evidence ", ""))
	case strings.Contains(arg, "show_level_up"), strings.Contains(arg, "check_level_up"):
		return "\n[LEVEL UP ANIMATION]\n"
	default:
		return fmt.Sprintf("\n[EVENT: %s]\n", arg)
	}
}

// ChoiceArrow prefixes every rendered choice.
const ChoiceArrow = "  → "

func renderChoice(line string) string {
	text := strings.TrimSpace(strings.TrimLeft(line, "- "))
	return ChoiceArrow + StripMarkup(text)
}

func renderLabel(line string) string {
	name := strings.TrimSpace(strings.ReplaceAll(line, "label ", ""))
	return fmt.Sprintf("\n[LABEL: %s]\n", name)
}

func renderJump(line string) string {
	target := strings.TrimSpace(strings.ReplaceAll(line, "jump ", ""))
	return fmt.Sprintf("[JUMP TO: %s]", target)
}

func renderVariableSet(line string) string {
	return "[" + line + "]"
}

func renderConditional(line string) string {
	return "\n" + line
}

func renderNarrative(line string) string {
	cleaned := StripMarkup(line)
	if cleaned == "" {
		return ""
	}
	return "\n" + cleaned
}

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// sampleTimeline is written by Sample so a fresh checkout has something to
// convert.
const sampleTimeline = `[background arg="res://art/bg/harbor_night.png" fade="1.0"]
join "Mara" (worried) left
join Ivo right
Mara: You said the [b]ship[/b] would be here by midnight.
Ivo: [color=#9a9a9a]It will.[/color] Trust me.
[signal arg="unlock_evidence harbor_ledger"]
- Ask about the ledger
- Stay silent
label after_choice
if {trust} > 2
set {trust} += 1
The fog rolls in over the docks.
leave --All--
jump chapter_03/start
`

// Sample writes an example timeline into the chapter folder.
func Sample() error {
	mg.Deps(Init)
	path := filepath.Join(chapterDir, "sample.dtl")
	if err := os.WriteFile(path, []byte(sampleTimeline), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println("Wrote", path)
	return nil
}

// Convert builds the CLI and converts every timeline in the chapter folder.
func Convert() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "convert", chapterDir)
}

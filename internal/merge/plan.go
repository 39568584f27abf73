// Package merge is the template-resolution and deck-mutation engine: it
// resolves placeholder tokens against loaded records, rewrites text runs,
// applies conditional cell coloring, grows or shrinks the deck to match the
// data, and sweeps leftover tokens.
package merge

import (
	"fmt"
	"strings"

	"deckmerge/internal/deck"
)

// Format carries the run-level overrides of a replacement. Each knob is
// independently optional; an unset knob leaves the run's inherited
// formatting alone.
type Format struct {
	Bold  *bool
	Size  float64 // points; 0 means no override
	Color *deck.RGB
}

// Replacement is the display text and styling for one placeholder.
type Replacement struct {
	Text   string
	Format Format
}

// Plan maps whitespace-normalized placeholder text to its replacement.
// Plans are built per region or paragraph pass and consumed immediately.
type Plan map[string]Replacement

// Add stores a replacement under the normalized form of key. The key is
// the full token including delimiters.
func (pl Plan) Add(key, text string, f Format) {
	pl[NormalizeKey(key)] = Replacement{Text: text, Format: f}
}

// AddIndexed builds the token from an index-bearing key format ("MD%d")
// and stores the replacement. A no-op when format is empty (family not
// configured).
func (pl Plan) AddIndexed(format string, idx int, text string, f Format) {
	if format == "" {
		return
	}
	pl.Add("{{"+fmt.Sprintf(format, idx)+"}}", text, f)
}

// Merge copies other's entries into pl.
func (pl Plan) Merge(other Plan) {
	for k, v := range other {
		pl[k] = v
	}
}

// NormalizeKey collapses every whitespace run into one space so tokens
// differing only in internal whitespace resolve identically.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Report palette.
var (
	ColorTitleBlue  = deck.RGB{R: 0, G: 176, B: 240}
	ColorBlack      = deck.RGB{R: 0, G: 0, B: 0}
	ColorDoneGreen  = deck.RGB{R: 226, G: 239, B: 217}
	ColorStageGreen = deck.RGB{R: 87, G: 162, B: 55}
	ColorWhite      = deck.RGB{R: 255, G: 255, B: 255}
	ColorRed        = deck.RGB{R: 255, G: 0, B: 0}
	ColorYellow     = deck.RGB{R: 247, G: 203, B: 84}
	ColorGrey       = deck.RGB{R: 128, G: 128, B: 128}
	ColorNeutral    = deck.RGB{R: 200, G: 200, B: 200}
)

func boolPtr(b bool) *bool { return &b }

// Shared formats. Titles are bold blue 7pt; dates on the overview are bold
// black 7pt; table body text is plain 10pt.
var (
	fmtTitle   = Format{Bold: boolPtr(true), Size: 7, Color: &ColorTitleBlue}
	fmtDate    = Format{Bold: boolPtr(true), Size: 7, Color: &ColorBlack}
	fmtSmall   = Format{Size: 7, Color: &ColorBlack}
	fmtBody    = Format{Bold: boolPtr(false), Size: 10, Color: &ColorBlack}
	fmtMessage = Format{Bold: boolPtr(false), Size: 11, Color: &ColorBlack}
)

// completenessFormat styles a completeness value: fully complete renders
// in the stage green, anything else neutral black. Pure function of the
// value.
func completenessFormat(value string) Format {
	f := Format{Bold: boolPtr(false), Size: 10, Color: &ColorBlack}
	if strings.Contains(value, "100%") {
		f.Color = &ColorStageGreen
	}
	return f
}

// orNA substitutes "N/A" for an absent field value.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

package merge

import (
	"regexp"
	"strconv"
	"strings"

	"deckmerge/internal/deck"
	"deckmerge/internal/record"
)

// stageRe extracts the leading stage number of a heatmap value such as
// "3. Develop & Test".
var stageRe = regexp.MustCompile(`^(\d+)\.`)

// StageOf parses the record's heatmap stage, 0 when absent or malformed.
func StageOf(rec *record.Record) int {
	m := stageRe.FindStringSubmatch(strings.TrimSpace(rec.HeatmapStage))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ColorStageRow paints the heatmap columns of one table row: columns
// before the record's stage get the completed green, the stage column the
// active green, later columns white. Column 0 holds the title and is left
// alone.
func ColorStageRow(row *deck.Row, stage int, columns int) {
	cells := row.Cells()
	for col := 1; col <= columns; col++ {
		if col >= len(cells) {
			break
		}
		var c deck.RGB
		switch {
		case col < stage:
			c = ColorDoneGreen
		case col == stage:
			c = ColorStageGreen
		default:
			c = ColorWhite
		}
		cells[col].SetSolidFill(c)
	}
}

// TrafficLight maps a status value onto a fill color. Matching is by
// substring, green before red before yellow, so combined values such as
// "Yellow/Red" resolve to their most urgent recognized color the way the
// report template expects.
func TrafficLight(status string) deck.RGB {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "green"):
		return ColorStageGreen
	case strings.Contains(s, "red"):
		return ColorRed
	case strings.Contains(s, "yellow"):
		return ColorYellow
	case strings.Contains(s, "grey"), strings.Contains(s, "gray"):
		return ColorGrey
	}
	return ColorNeutral
}

// ApplyTrafficCell checks one table cell for a traffic token and, when its
// index resolves, fills the cell with the record's status color and blanks
// the cell text. The token is terminal for its cell: no further rewriting
// applies. Reports whether the cell was consumed.
func ApplyTrafficCell(cell *deck.Cell, re *regexp.Regexp, recs []*record.Record) bool {
	tf := cell.TextFrame()
	idx := FindIndex(re, tf.Text())
	if idx < 1 || idx > len(recs) {
		return false
	}
	cell.SetSolidFill(TrafficLight(recs[idx-1].TrafficLight))
	tf.ClearText()
	return true
}

// ApplyTrafficShape is ApplyTrafficCell for a free-standing text shape.
func ApplyTrafficShape(sh *deck.Shape, re *regexp.Regexp, recs []*record.Record) bool {
	if !sh.HasTextFrame() {
		return false
	}
	tf := sh.TextFrame()
	idx := FindIndex(re, tf.Text())
	if idx < 1 || idx > len(recs) {
		return false
	}
	sh.SetSolidFill(TrafficLight(recs[idx-1].TrafficLight))
	tf.ClearText()
	return true
}

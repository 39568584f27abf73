package ux

import (
	"fmt"
	"os"

	"deckmerge/internal/state"
)

// RenderSummary prints the last-run summary display.
func RenderSummary(s *state.Summary) {
	if s == nil {
		fmt.Printf("%sNo report generated yet.%s\n", Dim, Reset)
		return
	}

	fmt.Printf("%sGenerated:%s %s\n", Bold, Reset, s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if _, err := os.Stat(s.Output); err == nil {
		fmt.Printf("%sOutput:%s    %s\n", Bold, Reset, s.Output)
	} else {
		fmt.Printf("%sOutput:%s    %s %s(missing)%s\n", Bold, Reset, s.Output, Red, Reset)
	}
	fmt.Printf("%sRecords:%s   %d\n", Bold, Reset, s.Records)

	if len(s.Regions) > 0 {
		fmt.Printf("\n%sRegions:%s\n", Bold, Reset)
		for _, r := range s.Regions {
			fmt.Printf("  %-20s %d matched, %d displayed\n", r.Name, r.Matched, r.Displayed)
		}
	}

	fmt.Printf("\n%sFoundational:%s %d\n", Bold, Reset, s.Foundational)
	fmt.Printf("%sOne-pagers:%s   %d filled, %d slides deleted\n", Bold, Reset, s.OnePagers, s.DeletedSlides)
	fmt.Printf("%sCleanup:%s      %d leftover placeholders removed\n", Bold, Reset, s.CleanedFragments)

	if len(s.Warnings) > 0 {
		fmt.Printf("\n%sWarnings:%s\n", Bold, Reset)
		for _, w := range s.Warnings {
			fmt.Printf("  %s⚠ %s%s\n", Yellow, w, Reset)
		}
	}
	fmt.Println()
}

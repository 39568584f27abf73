package ux

import (
	"fmt"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// ConsoleObserver renders merge progress to the terminal. Satisfies the
// engine's observer interface.
type ConsoleObserver struct{}

// Phase prints a timestamped phase header.
func (ConsoleObserver) Phase(name string) {
	fmt.Printf("%s[%s]%s %s▸ %s%s\n", Dim, timestamp(), Reset, Cyan, name, Reset)
}

// Infof prints an informational progress line.
func (ConsoleObserver) Infof(format string, args ...any) {
	fmt.Printf("%s[%s]%s   %s\n", Dim, timestamp(), Reset, fmt.Sprintf(format, args...))
}

// Warnf prints a warning line.
func (ConsoleObserver) Warnf(format string, args ...any) {
	fmt.Printf("%s[%s]%s   %s⚠ %s%s\n", Dim, timestamp(), Reset, Yellow, fmt.Sprintf(format, args...), Reset)
}

// Errorf prints an error line in red.
func Errorf(format string, args ...any) {
	fmt.Printf("%s✗ %s%s\n", Red, fmt.Sprintf(format, args...), Reset)
}

// Success prints a final success message with the output path.
func Success(output string) {
	fmt.Printf("\n%s%s✓ Report written%s %s\n", Bold, Green, Reset, output)
}

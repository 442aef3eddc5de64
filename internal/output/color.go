package output

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeCount renders a redaction count. Non-zero counts are highlighted
// and zero counts are dimmed.
func ColorizeCount(n int) string {
	text := strconv.Itoa(n)
	if n == 0 {
		return colorGray + text + colorReset
	}
	return colorYellow + text + colorReset
}

// ColorizeWarning renders a line that needs the reader's attention.
func ColorizeWarning(line string) string {
	return colorBold + colorRed + line + colorReset
}

func (wr *Writer) count(n int) string {
	if wr.colorize {
		return ColorizeCount(n)
	}
	return strconv.Itoa(n)
}

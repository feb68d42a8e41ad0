package stats

import (
	"os"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	curveLabelWidth     = 30
	minSparklineWidth   = 10
)

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// SparklineWidthFor leaves room for the curve label and range on a line of totalWidth.
func SparklineWidthFor(totalWidth int) int {
	width := totalWidth - curveLabelWidth
	if width < minSparklineWidth {
		return minSparklineWidth
	}
	return width
}

package outwriter

import (
	"os"

	"golang.org/x/term"
)

// reportWidth picks the ruler width for text reports from the terminal,
// clamped to a readable range.
func reportWidth() int {
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		return 80
	}
	if detectedWidth < 40 {
		return 40
	}
	if detectedWidth > 80 {
		return 80
	}
	return detectedWidth
}

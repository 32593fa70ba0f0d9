package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Error-rate label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label indicating how severe an error
// rate (percentage) is. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainLabel(rate float64) string {
	switch {
	case rate >= 25:
		return CriticalValue
	case rate >= 10:
		return HighValue
	case rate >= 5:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored severity label for console output.
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(rate float64) string {
	text := GetPlainLabel(rate)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".loganalyzer.db"
	}
	return filepath.Join(homeDir, ".loganalyzer.db")
}

package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Match label constants.
const (
	PerfectValue = "Perfect" // Perfect value
	StrongValue  = "Strong"  // Strong value
	FairValue    = "Fair"    // Fair value
	WeakValue    = "Weak"    // Weak value
)

// Color variables for console output.
var (
	PerfectColor = color.New(color.FgGreen, color.Bold) // PerfectColor marks a top match.
	StrongColor  = color.New(color.FgCyan, color.Bold)  // StrongColor marks a solid match.
	FairColor    = color.New(color.FgYellow)            // FairColor marks a passable match.
	WeakColor    = color.New(color.FgHiBlack)           // WeakColor marks a poor match.
)

// GetPlainLabel returns a plain text label for a 0-10 match score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 8:
		return PerfectValue
	case score >= 6:
		return StrongValue
	case score >= 4:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case PerfectValue:
		return PerfectColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default:
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
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

// GetDBFilePath returns the path to the SQLite DB file for the profile store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".moodmixer-profile.db"
	}
	return filepath.Join(homeDir, ".moodmixer-profile.db")
}

// TruncateText shortens s to maxWidth runes with a trailing ellipsis.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return s
	}
	if _, cut := TruncateRunes(s, maxWidth); cut {
		head, _ := TruncateRunes(s, maxWidth-3)
		return head + "..."
	}
	return s
}

// TruncateRunes returns the first n runes of s and whether anything was cut.
// It never splits a multi-byte character.
func TruncateRunes(s string, n int) (string, bool) {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// FormatPrice renders a price as $N.NN.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Package detector decides whether terminal output should be styled.
package detector

import (
	"os"

	"golang.org/x/term"
)

// ColorMode selects how report and status output is styled.
type ColorMode int

const (
	// ModeAuto styles output only on an interactive terminal.
	ModeAuto ColorMode = iota
	// ModeColor always styles output.
	ModeColor
	// ModePlain never styles output.
	ModePlain
)

// DetectEnvironment returns the recommended mode for the given file.
// Non-terminals and CI runs get plain output.
func DetectEnvironment(f *os.File) ColorMode {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies the --color flag to auto-detection.
// userFlag should be one of: "auto", "always", "never", or empty.
func ResolveMode(autoDetected ColorMode, userFlag string) ColorMode {
	switch userFlag {
	case "always":
		return ModeColor
	case "never":
		return ModePlain
	default:
		return autoDetected
	}
}

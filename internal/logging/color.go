package logging

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorEnv selects colour output: "always", "never" or "auto" (the default).
const ColorEnv = "RKM_COLOR"

// ColorMode is the parsed value of RKM_COLOR.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ColorModeFromEnv reads RKM_COLOR. Unknown values fall back to ColorAuto.
func ColorModeFromEnv() ColorMode {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(os.Getenv(ColorEnv)))); m {
	case ColorAlways, ColorNever:
		return m
	default:
		return ColorAuto
	}
}

// IsTTY reports whether w is a terminal. Anything exposing Fd() is checked.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colour should be written to w.
// RKM_COLOR=always and RKM_COLOR=never win over everything else; in auto
// mode NO_COLOR and TERM=dumb disable colour and w must be a terminal.
func SupportsColor(w io.Writer) bool {
	return colorEnabled(ColorModeFromEnv(), IsTTY(w))
}

func colorEnabled(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// ApplyColor makes fatih/color, used for command output, follow the same
// decision as the log handler for w.
func ApplyColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}

// Package output creates termenv outputs with a consistent color profile.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected terminal profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// IsTerminal reports whether w is backed by a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int
}

// New creates a termenv.Output for w. A nil writer means os.Stderr. Writers
// that are not terminals get no color.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	tty := IsTerminal(w)
	profile := termenv.Ascii
	if tty {
		profile = ColorProfile()
	}

	opts = append(opts,
		termenv.WithProfile(profile),
		termenv.WithTTY(tty),
	)

	return termenv.NewOutput(w, opts...)
}

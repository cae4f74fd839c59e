// Package editor launches the user's preferred text editor on a keymap file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnvEditor overrides $EDITOR and $VISUAL for rkm only.
const EnvEditor = "RKM_EDITOR"

// Launcher runs an editor with the process's standard streams unless
// overridden.
type Launcher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithIO sets the streams handed to the editor process.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = in
		l.stdout = out
		l.stderr = errOut
	}
}

// New returns a Launcher.
func New(opts ...Option) *Launcher {
	l := &Launcher{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open launches the editor for path and waits for it to exit.
// The editor setting may carry arguments, e.g. "code --wait".
func (l *Launcher) Open(ctx context.Context, path string) error {
	argv := strings.Fields(detectEditor())

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}

	return nil
}

// Open launches the editor for path using the process's standard streams.
func Open(ctx context.Context, path string) error {
	return New().Open(ctx, path)
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $RKM_EDITOR → $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	for _, env := range []string{EnvEditor, "EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}

	// User-friendly fallback (nano is easier for beginners)
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// POSIX standard fallback (vi is available on all Unix systems)
	return "vi"
}

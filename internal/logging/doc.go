// Package logging provides structured logging for the rkm CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Verbosity
//
// The CLI maps repeated -v flags through [LevelFromVerbosity]. When no flag
// is given, RKM_DEBUG is consulted via [VerbosityFromEnv]. Commands fetch
// their logger with [FromContext].
//
// # Sinks and colour
//
// [Setup] builds the logger for one invocation: the console handler chosen
// by --log-format, plus a JSON sink for --log-file that keeps Info records
// even under -q. RKM_COLOR (always, never, auto) overrides terminal
// detection for both log output and command output via [ApplyColor].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging

// Package cmd holds rkm build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/thoreinstein/rkm/cmd.Version=v0.3.0" ./cmd/rkm
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/tubesort/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tubesort/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tubesort/internal/version.Date={{.Date}}
)

// String returns the version line printed by `tubesort version`
func String() string {
	return fmt.Sprintf("tubesort %s (commit %s, built %s)", Version, Commit, Date)
}

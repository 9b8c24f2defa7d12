// Package buildinfo carries identifiers stamped at build time.
package buildinfo

// Set via -ldflags="-X racedash/internal/buildinfo.Version=... -X racedash/internal/buildinfo.Commit=...".
var (
	Version = "dev"
	Commit  = ""
)

// Short returns a compact identifier for window titles and boot log lines:
// the release version when stamped, the commit when only that is known,
// "dev" otherwise.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" {
		if len(Commit) > 8 {
			return Commit[:8]
		}
		return Commit
	}
	return "dev"
}

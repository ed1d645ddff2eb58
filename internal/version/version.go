// Package version reports build information.
package version

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/abdullathedruid/gitmux/internal/version.GitSHA=$(git rev-parse --short HEAD)"
var (
	// GitSHA is the git commit SHA (short form) at build time.
	GitSHA = "dev"
	// Date is the build date.
	Date = ""
)

// Short returns a short version string suitable for display.
func Short() string {
	return GitSHA
}

// String returns the full version line printed by the version command.
func String() string {
	if Date == "" {
		return "gitmux " + GitSHA
	}
	return "gitmux " + GitSHA + " (" + Date + ")"
}

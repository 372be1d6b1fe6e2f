package version

// Version is the current gitblog release.
// Bump on each release.
const Version = "0.3.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}

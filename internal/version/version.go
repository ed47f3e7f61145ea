package version

// Version contains the application version information.
// Set via build-time ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/sitecfg/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return "sitecfg " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}

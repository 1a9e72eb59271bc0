package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/exportreadme/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}

// Package version holds the lpub build version and the snapshot format version.
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built, RFC 3339 or YYYY-MM-DD
	BuildDate = "unknown"
)

// SnapshotFormat is the version written into registry snapshots. Readers accept any
// snapshot with the same major version.
const SnapshotFormat = "1.1.0"

// Info represents comprehensive version information
type Info struct {
	Version   string          `json:"version"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	Snapshot  string          `json:"snapshotFormat"`
	SemVer    *semver.Version `json:"-"`
}

// GetInfo returns comprehensive version information
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Snapshot:  SnapshotFormat,
		SemVer:    sv,
	}, nil
}

// GetBaseVersion returns major.minor.patch without prerelease or build metadata.
func GetBaseVersion() string {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return Version
	}
	return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
}

// GetFormattedVersion returns a one line version string.
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("LPub Meta v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("LPub Meta v%s", info.Version)}
	if info.GitCommit != "unknown" && info.GitCommit != "" {
		shortCommit := info.GitCommit
		if len(shortCommit) > 7 {
			shortCommit = shortCommit[:7]
		}
		parts = append(parts, fmt.Sprintf("commit %s", shortCommit))
	}
	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, fmt.Sprintf("built %s", info.BuildDate))
	}
	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns detailed version information for debugging
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("LPub Meta v%s (error: %v)", Version, err)
	}

	lines := []string{
		fmt.Sprintf("LPub Meta v%s", info.Version),
		fmt.Sprintf("Git Commit: %s", info.GitCommit),
		fmt.Sprintf("Build Date: %s", info.BuildDate),
	}
	if md := info.SemVer.Metadata(); md != "" {
		lines = append(lines, fmt.Sprintf("Build Metadata: %s", md))
	}
	if built, err := GetBuildTime(); err == nil {
		lines = append(lines, fmt.Sprintf("Build Age: %s", time.Since(built).Truncate(time.Hour)))
	}
	lines = append(lines,
		fmt.Sprintf("Build Type: %s", buildType()),
		fmt.Sprintf("Snapshot Format: %s", info.Snapshot),
		fmt.Sprintf("Go Version: %s", info.GoVersion),
		fmt.Sprintf("Platform: %s", info.Platform))
	return strings.Join(lines, "\n")
}

func buildType() string {
	switch {
	case IsDevelopment():
		return "development"
	case IsPrerelease():
		return "prerelease"
	default:
		return "release"
	}
}

// ValidateVersion validates that the current version is a valid semantic version
func ValidateVersion() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return nil
}

// IsPrerelease returns true if the current version is a prerelease
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// IsDevelopment returns true if this appears to be a development build
func IsDevelopment() bool {
	return GitCommit == "unknown" || BuildDate == "unknown"
}

// CompatibleSnapshot reports whether a snapshot written with format can be read.
func CompatibleSnapshot(format string) error {
	sv, err := semver.NewVersion(format)
	if err != nil {
		return fmt.Errorf("invalid snapshot format '%s': %w", format, err)
	}
	current := semver.MustParse(SnapshotFormat)
	c, err := semver.NewConstraint(fmt.Sprintf("^%d.0.0, <= %s", current.Major(), current.String()))
	if err != nil {
		return fmt.Errorf("invalid snapshot constraint: %w", err)
	}
	if !c.Check(sv) {
		return fmt.Errorf("snapshot format %s is not readable by format %s", format, SnapshotFormat)
	}
	return nil
}

// SetBuildInfo sets build information (used for testing)
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}

// GetBuildTime returns the build time if BuildDate is parseable
func GetBuildTime() (time.Time, error) {
	if BuildDate == "unknown" || BuildDate == "" {
		return time.Time{}, fmt.Errorf("build date not available")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, BuildDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse build date: %s", BuildDate)
}

package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { SetBuildInfo(origVersion, origCommit, origDate) })
	SetBuildInfo(version, commit, date)
}

func TestGetInfo(t *testing.T) {
	withBuildInfo(t, "0.3.1+42.abc1234", "abc1234def", "2024-03-01")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.3.1+42.abc1234", info.Version)
	assert.Equal(t, SnapshotFormat, info.Snapshot)
	assert.Equal(t, "42.abc1234", info.SemVer.Metadata())
	assert.Equal(t, "0.3.1", GetBaseVersion())

	assert.Equal(t, "LPub Meta v0.3.1+42.abc1234, commit abc1234, built 2024-03-01", GetFormattedVersion())
	assert.Contains(t, GetDetailedVersion(), "Build Metadata: 42.abc1234")
	assert.Contains(t, GetDetailedVersion(), "Snapshot Format: "+SnapshotFormat)
	assert.Contains(t, GetDetailedVersion(), "Build Type: release")
	assert.Contains(t, GetDetailedVersion(), "Build Age: ")
}

func TestBuildType(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"development", "0.3.0", "unknown", "development"},
		{"prerelease", "0.4.0-rc.1", "abc1234", "prerelease"},
		{"release", "0.4.0", "abc1234", "release"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, "2024-03-01")
			assert.Equal(t, tt.want, buildType())
		})
	}
}

func TestInvalidVersion(t *testing.T) {
	withBuildInfo(t, "not-a-version", "unknown", "unknown")

	_, err := GetInfo()
	assert.Error(t, err)
	assert.Error(t, ValidateVersion())
	assert.Equal(t, "not-a-version", GetBaseVersion())
	assert.Equal(t, "LPub Meta vnot-a-version (invalid version)", GetFormattedVersion())
	assert.False(t, IsPrerelease())
	assert.True(t, IsDevelopment())
}

func TestIsPrerelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"0.3.0", false},
		{"0.3.0-beta.1", true},
		{"1.0.0-rc1+7", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			withBuildInfo(t, tt.version, "c", "d")
			assert.Equal(t, tt.want, IsPrerelease())
			assert.False(t, IsDevelopment())
		})
	}
}

func TestCompatibleSnapshot(t *testing.T) {
	tests := []struct {
		format string
		ok     bool
	}{
		{"1.0.0", true},
		{"1.1.0", true},
		{"1.2.0", false},
		{"0.9.0", false},
		{"2.0.0", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := CompatibleSnapshot(tt.format)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetBuildTime(t *testing.T) {
	tests := []struct {
		date    string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), false},
		{"unknown", time.Time{}, true},
		{"", time.Time{}, true},
		{"March 1st", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			withBuildInfo(t, "0.3.0", "c", tt.date)
			got, err := GetBuildTime()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

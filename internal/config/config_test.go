package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel:     "info",
		ReportFormat: "text",
		ServeAddr:    "127.0.0.1:8088",
		Theme:        "auto",
	}, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lpub.yaml"), []byte(`
log_level: warn
report_format: yaml
serve_addr: ":9000"
search_dirs:
  - /ldraw
extended_search: true
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"LPUB_SERVE_ADDR=:9100\nLPUB_THEME=light\nOTHER_VAR=ignored\n"), 0o644))
	t.Setenv("LPUB_THEME", "dark")
	t.Setenv("LPUB_SERVE_ADDR", "")
	os.Unsetenv("LPUB_SERVE_ADDR")
	t.Setenv("OTHER_VAR", "")
	os.Unsetenv("OTHER_VAR")

	flags := pflag.NewFlagSet("lpub", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("format", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	v := New()
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "flag beats config file")
	assert.Equal(t, "yaml", cfg.ReportFormat, "unset flag keeps config file value")
	assert.Equal(t, "dark", cfg.Theme, "environment beats .env")
	assert.Equal(t, ":9100", cfg.ServeAddr, ".env beats config file")
	assert.Equal(t, []string{"/ldraw"}, cfg.SearchDirs)
	assert.True(t, cfg.ExtendedSearch)
	_, set := os.LookupEnv("OTHER_VAR")
	assert.False(t, set, "only LPUB_ variables are exported")
}

func TestLoad_EnvSearchDirs(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LPUB_SEARCH_DIRS", "/a"+string(os.PathListSeparator)+"/b")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.SearchDirs)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("report_format = \"json\"\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.ReportFormat)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_TestModeSkipsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LPUB_REPORT_FORMAT=json\n"), 0o644))
	t.Setenv("LPUB_TEST_MODE", "true")
	t.Setenv("LPUB_REPORT_FORMAT", "")
	os.Unsetenv("LPUB_REPORT_FORMAT")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, "text", cfg.ReportFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{LogLevel: "info", ReportFormat: "json"}, false},
		{"warning alias", Config{LogLevel: "WARNING", ReportFormat: "text"}, false},
		{"bad format", Config{LogLevel: "info", ReportFormat: "xml"}, true},
		{"bad level", Config{LogLevel: "loud", ReportFormat: "text"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

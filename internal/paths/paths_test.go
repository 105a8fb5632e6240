package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformDefaults_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name   string
		fn     func() (string, error)
		xdgVar string
		xdgVal string
		want   string
	}{
		{
			name:   "config honors XDG_CONFIG_HOME",
			fn:     DefaultConfigDir,
			xdgVar: "XDG_CONFIG_HOME",
			xdgVal: "/tmp/xdg-config",
			want:   "/tmp/xdg-config/cadence",
		},
		{
			name:   "config falls back to ~/.config",
			fn:     DefaultConfigDir,
			xdgVar: "XDG_CONFIG_HOME",
			xdgVal: "",
			want:   filepath.Join(home, ".config", "cadence"),
		},
		{
			name:   "data honors XDG_DATA_HOME",
			fn:     DefaultDataDir,
			xdgVar: "XDG_DATA_HOME",
			xdgVal: "/tmp/xdg-data",
			want:   "/tmp/xdg-data/cadence",
		},
		{
			name:   "data falls back to ~/.local/share",
			fn:     DefaultDataDir,
			xdgVar: "XDG_DATA_HOME",
			xdgVal: "",
			want:   filepath.Join(home, ".local", "share", "cadence"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.xdgVar, tt.xdgVal)
			got, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformDefaults_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	want := filepath.Join(home, "Library", "Application Support", "cadence")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, want, got, "config and data share the root on darwin")
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("/explicit/config")
		require.NoError(t, err)
		assert.Equal(t, "/explicit/config", got)
	})

	t.Run("env beats platform default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/env/config", got)
	})

	t.Run("platform default when nothing set", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Contains(t, got, "cadence")
	})

	t.Run("relative values become absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

		got, err = ResolveConfigDir("relative/flag")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// Each case drops the highest-precedence source of the previous one.
	tests := []struct {
		name       string
		flag       string
		configured string
		env        string
		want       string
	}{
		{"flag beats everything", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml beats env", "", "/config/data", "/env/data", "/config/data"},
		{"env beats cwd default", "", "", "/env/data", "/env/data"},
		{"cwd default when nothing set", "", "", "", filepath.Join(cwd, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("relative values become absolute", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		for _, args := range [][2]string{{"relative/flag", ""}, {"", "relative/config"}} {
			got, err := ResolveDataDir(args[0], args[1])
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		}
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Seasons: SeasonsConfig{
			DataPath: "/some/path",
		},
		Fetch: FetchConfig{RPS: 2, Burst: 4},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level %s", level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Seasons.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveRPS(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.RPS = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		fallback string
		want     string
	}{
		{"empty uses default", "", "/default", "/default"},
		{"absolute kept", "/abs/path", "/default", "/abs/path"},
		{"tilde expanded", "~/shelf", "/default", filepath.Join(home, "shelf")},
		{"cleaned", "/a/b/../c", "/default", "/a/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandStorePath_DefaultsUnderDataPath(t *testing.T) {
	cfg := &Config{
		Seasons: SeasonsConfig{DataPath: "/data/shelf"},
	}
	require.NoError(t, cfg.expandStorePath())
	assert.Equal(t, filepath.Join("/data/shelf", "db"), cfg.Store.Path)
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("SEASONSHELF_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SEASONSHELF_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "SEASONSHELF_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "SEASONSHELF_TEST_ABSENT", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, getBoolConfigValue(tt.value, "SEASONSHELF_TEST_ABSENT", !tt.want))
		})
	}

	// Empty everywhere falls back to the default.
	assert.True(t, getBoolConfigValue("", "SEASONSHELF_TEST_ABSENT", true))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("90s", "SEASONSHELF_TEST_ABSENT", "15s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = parseDurationValue("", "SEASONSHELF_TEST_ABSENT", "15s")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	_, err = parseDurationValue("soon", "SEASONSHELF_TEST_ABSENT", "15s")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"*"}, splitList("*"))
	assert.Empty(t, splitList(" , ,"))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
SEASONSHELF_TEST_FILE_A=hello
SEASONSHELF_TEST_FILE_B="quoted value"

SEASONSHELF_TEST_FILE_C=overridden
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Pre-set env wins over the file.
	t.Setenv("SEASONSHELF_TEST_FILE_C", "from-env")
	t.Setenv("SEASONSHELF_TEST_FILE_A", "")
	t.Setenv("SEASONSHELF_TEST_FILE_B", "")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "hello", os.Getenv("SEASONSHELF_TEST_FILE_A"))
	assert.Equal(t, "quoted value", os.Getenv("SEASONSHELF_TEST_FILE_B"))
	assert.Equal(t, "from-env", os.Getenv("SEASONSHELF_TEST_FILE_C"))
}

func TestLoadEnvFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("not a pair\n"), 0o600))
	assert.Error(t, loadEnvFile(path))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}

package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	content := `# comment
export QUOTED_VAL="alpha"
PLAIN_VAL=beta

PRESET_VAL=from-file
=no-key
not a pair
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// t.Setenv restores the originals; Unsetenv makes them absent for the test.
	for _, k := range []string{"QUOTED_VAL", "PLAIN_VAL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("PRESET_VAL", "from-env")

	applyEnvFile(path)

	assert.Equal(t, "alpha", os.Getenv("QUOTED_VAL"))
	assert.Equal(t, "beta", os.Getenv("PLAIN_VAL"))
	assert.Equal(t, "from-env", os.Getenv("PRESET_VAL"), "the OS environment wins over the file")
}

func TestApplyEnvFile_MissingFileIsSkipped(t *testing.T) {
	applyEnvFile(filepath.Join(t.TempDir(), "absent.env"))
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "")
	os.Unsetenv("CFG_TEST_KEY")

	assert.Equal(t, "from-config", getConfigValue("from-config", "CFG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "CFG_TEST_KEY", "fallback"))

	t.Setenv("CFG_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", getConfigValue("from-config", "CFG_TEST_KEY", "fallback"))
}

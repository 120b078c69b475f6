// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFiles(t *testing.T) {
	loaded, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env.local", "MINUTES_TEST_MODEL=gpt-4o\n")
	writeFile(t, dir, ".env", "MINUTES_TEST_MODEL=gpt-4o-mini\nMINUTES_TEST_BASE=http://localhost:11434/v1\n")
	unset(t, "MINUTES_TEST_MODEL", "MINUTES_TEST_BASE")

	loaded, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, ".env.local"), filepath.Join(dir, ".env")}, loaded)
	assert.Equal(t, "gpt-4o", os.Getenv("MINUTES_TEST_MODEL"))
	assert.Equal(t, "http://localhost:11434/v1", os.Getenv("MINUTES_TEST_BASE"))
}

func TestLoadKeepsExistingEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "MINUTES_TEST_KEY=from-file\n")
	t.Setenv("MINUTES_TEST_KEY", "from-env")

	_, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", os.Getenv("MINUTES_TEST_KEY"))
}

func TestLoadDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "MINUTES_TEST_SKIPPED=1\n")
	unset(t, "MINUTES_TEST_SKIPPED")
	t.Setenv(DisableVar, "off")

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	_, set := os.LookupEnv("MINUTES_TEST_SKIPPED")
	assert.False(t, set)
}

func TestDisabled(t *testing.T) {
	for _, v := range []string{"0", "false", "OFF", " no "} {
		t.Setenv(DisableVar, v)
		assert.True(t, Disabled(), v)
	}
	for _, v := range []string{"", "1", "on", "yes"} {
		t.Setenv(DisableVar, v)
		assert.False(t, Disabled(), v)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// unset removes keys for the duration of the test and restores them after.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

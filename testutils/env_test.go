package testutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodrovis/taxjar/testutils"
)

// fakeModule lays out root/go.mod, an optional root/.env and a nested
// directory, and returns root and the nested path.
func fakeModule(t *testing.T, dotenv string) (string, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/tax\n"), 0o644))
	if dotenv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(dotenv), 0o600))
	}
	nested := filepath.Join(root, "client", "internal")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	return root, nested
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestFindProjectRoot(t *testing.T) {
	root, nested := fakeModule(t, "")

	got, err := testutils.FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = testutils.FindProjectRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindProjectRoot_NoGoMod(t *testing.T) {
	_, err := testutils.FindProjectRoot(string(filepath.Separator))
	assert.Error(t, err)
}

func TestLoadDotEnv_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "live.env")
	require.NoError(t, os.WriteFile(p, []byte("TAXJAR_TESTUTILS_EXPLICIT=yes\n"), 0o600))
	unsetAfter(t, "TAXJAR_TESTUTILS_EXPLICIT")

	require.NoError(t, testutils.LoadDotEnv(p))
	assert.Equal(t, "yes", os.Getenv("TAXJAR_TESTUTILS_EXPLICIT"))
}

func TestLoadDotEnv_FallsBackToProjectRoot(t *testing.T) {
	_, nested := fakeModule(t, "TAXJAR_TESTUTILS_ROOT=found\n")
	chdir(t, nested)
	unsetAfter(t, "TAXJAR_TESTUTILS_ROOT")

	require.NoError(t, testutils.LoadDotEnv())
	assert.Equal(t, "found", os.Getenv("TAXJAR_TESTUTILS_ROOT"))
}

func TestLoadDotEnv_KeepsExistingValues(t *testing.T) {
	root, _ := fakeModule(t, "TAXJAR_TESTUTILS_KEEP=fromfile\n")
	chdir(t, root)
	t.Setenv("TAXJAR_TESTUTILS_KEEP", "preset")

	require.NoError(t, testutils.LoadDotEnv())
	assert.Equal(t, "preset", os.Getenv("TAXJAR_TESTUTILS_KEEP"))
}

func TestLoadDotEnv_NothingToLoad(t *testing.T) {
	_, nested := fakeModule(t, "")
	chdir(t, nested)
	assert.Error(t, testutils.LoadDotEnv())
}

func TestLiveToken(t *testing.T) {
	_, nested := fakeModule(t, "")
	chdir(t, nested)

	t.Setenv("TAXJAR_API_TOKEN", "  ")
	assert.Empty(t, testutils.LiveToken())

	t.Setenv("TAXJAR_API_TOKEN", "sandbox-token")
	assert.Equal(t, "sandbox-token", testutils.LiveToken())
}

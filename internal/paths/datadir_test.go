package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataDir_AppendsRegistrarDir(t *testing.T) {
	tempDir := t.TempDir()

	resolved := ResolveDataDir(tempDir)
	assert.Equal(t, filepath.Join(tempDir, ".registrar"), resolved)
}

func TestResolveDataDir_EmptyUsesCurrentDir(t *testing.T) {
	resolved := ResolveDataDir("")
	assert.Equal(t, ".registrar", resolved)
}

func TestResolveDataDir_AcceptsRegistrarDirDirectly(t *testing.T) {
	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, ".registrar")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	resolved := ResolveDataDir(dataDir)
	assert.Equal(t, dataDir, resolved)
}

func TestResolveDataDir_DetectsDataFiles(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "courses.csv"), []byte("id,name\n"), 0644))

	resolved := ResolveDataDir(tempDir)
	assert.Equal(t, tempDir, resolved)
}

func TestResolveDataDir_DetectsSqliteFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "registrar.db"), []byte{}, 0644))

	resolved := ResolveDataDir(tempDir)
	assert.Equal(t, tempDir, resolved)
}

func TestResolveDataDir_FollowsRedirect(t *testing.T) {
	tempDir := t.TempDir()
	actual := filepath.Join(tempDir, "shared", ".registrar")
	require.NoError(t, os.MkdirAll(actual, 0755))

	local := filepath.Join(tempDir, "checkout", ".registrar")
	require.NoError(t, os.MkdirAll(local, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(local, "redirect"), []byte("../../shared/.registrar\n"), 0644))

	resolved := ResolveDataDir(filepath.Join(tempDir, "checkout"))
	assert.Equal(t, actual, resolved)
}

func TestResolveDataDir_EmptyRedirectIgnored(t *testing.T) {
	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, ".registrar")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "redirect"), []byte("  \n"), 0644))

	resolved := ResolveDataDir(tempDir)
	assert.Equal(t, dataDir, resolved)
}

package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "contacts", "state", "session.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "session.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "contacts")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureDir(blocker), "should fail when a file exists with the same name")
}

func TestEnsureParentDir_SkipsMemoryAndBareNames(t *testing.T) {
	require.NoError(t, EnsureParentDir(":memory:"))
	require.NoError(t, EnsureParentDir("file:x?mode=memory&cache=shared"))
	require.NoError(t, EnsureParentDir("session.db"))
}

func TestIsMemoryDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{":memory:", true},
		{"file:s?mode=memory", true},
		{"file:/tmp/s.db", false},
		{"/tmp/s.db", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsMemoryDSN(tt.dsn), tt.dsn)
	}
}

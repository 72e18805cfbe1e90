package testutil

import (
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/dashboard-service/internal/prefs"
)

// NewTempPrefs opens a preferences store backed by a file in a temp dir.
func NewTempPrefs(t *testing.T) *prefs.FileStore {
	t.Helper()
	s, err := prefs.Open(filepath.Join(t.TempDir(), "preferences.json"))
	if err != nil {
		t.Fatalf("failed to open preferences: %v", err)
	}
	return s
}

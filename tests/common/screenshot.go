package common

import (
	"os"
	"path/filepath"
	"testing"
)

// SaveArtifact writes debugging output (screenshots, page dumps) under the
// results directory and returns the written path. Failures are reported but
// never fail the test.
func SaveArtifact(t *testing.T, name string, data []byte) string {
	t.Helper()
	dir := GetResultsDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Logf("save artifact %s: %v", name, err)
		return ""
	}
	return path
}

package handlers

import (
	"fmt"
	"path/filepath"
	"testing"

	tt "github.com/imamik/topocheck/internal/testing"
)

// writeConfig writes a topocheck.yaml reading stacks from stackDir and
// returns its path.
func writeConfig(t *testing.T, stackDir string, extra string) string {
	t.Helper()
	content := fmt.Sprintf("stacks:\n  source: dir\n  dir: %s\nlog:\n  level: debug\n  format: json\n%s", stackDir, extra)
	return tt.WriteFile(t, t.TempDir(), "topocheck.yaml", content)
}

// requestFile writes a request document into a temp dir.
func requestFile(t *testing.T, name, content string) string {
	t.Helper()
	return tt.WriteFile(t, t.TempDir(), filepath.Base(name), content)
}

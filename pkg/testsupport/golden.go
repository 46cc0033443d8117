package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// GoldenPath returns testdata/<name>.golden.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// AssertGolden fails t when got differs from the golden file called name.
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()
	data, err := os.ReadFile(GoldenPath(name))
	if err != nil {
		t.Fatalf("golden %s: %v", name, err)
	}
	if diff := cmp.Diff(string(data), got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", name, diff)
	}
}

package sanity_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestSanity builds the sheet binary and runs `sheet check` over every
// testdata fixture. Fixtures named valid_*.sheet must check clean;
// fixtures named broken_*.sheet must fail with a nonzero exit, exercising
// the planner's error surfaces end to end.
func TestSanity(t *testing.T) {
	binPath, err := filepath.Abs("../../sheet")
	if err != nil {
		t.Fatalf("failed to resolve binary absolute path: %v", err)
	}

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/sheet")
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to build sheet: %v\n%s", err, output)
		}
	}

	files, err := filepath.Glob("testdata/*.sheet")
	if err != nil {
		t.Fatalf("failed to glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no sanity fixtures found")
	}

	for _, file := range files {
		base := filepath.Base(file)
		t.Run(base, func(t *testing.T) {
			cmd := exec.Command(binPath, "check", file)
			output, err := cmd.CombinedOutput()

			wantClean := strings.HasPrefix(base, "valid_")
			if wantClean && err != nil {
				t.Fatalf("expected %s to check clean, got error: %v\n%s", base, err, output)
			}
			if !wantClean && err == nil {
				t.Fatalf("expected %s to fail check, got success:\n%s", base, output)
			}
		})
	}
}

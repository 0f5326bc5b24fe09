package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckSourceFile(t *testing.T) {
	dir := t.TempDir()

	if result := CheckSourceFile(filepath.Join(dir, "missing.mp4")); result.Passed {
		t.Fatal("expected missing file to fail")
	}
	if result := CheckSourceFile(dir); result.Passed {
		t.Fatal("expected directory to fail")
	}

	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	if result := CheckSourceFile(empty); result.Passed {
		t.Fatal("expected empty file to fail")
	}

	video := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(video, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if result := CheckSourceFile(video); !result.Passed {
		t.Fatalf("expected regular file to pass, got %+v", result)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryAccess("Scratch directory", dir); !result.Passed {
		t.Fatalf("expected writable temp dir to pass, got %+v", result)
	}
	if result := CheckDirectoryAccess("Scratch directory", filepath.Join(dir, "missing")); result.Passed {
		t.Fatal("expected missing dir to fail")
	}
}

func TestFailedReturnsFirstFailure(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Detail: "broken"},
		{Name: "c", Passed: false},
	}
	failure, failed := Failed(results)
	if !failed || failure.Name != "b" {
		t.Fatalf("expected first failure b, got %+v (%v)", failure, failed)
	}
	if _, failed := Failed(results[:1]); failed {
		t.Fatal("expected no failure")
	}
}

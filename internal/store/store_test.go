package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"clipsight/internal/analysis"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("/videos/my_summer-ad.mp4")
	if run.Title != "My Summer Ad" {
		t.Fatalf("unexpected title: %q", run.Title)
	}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	fetched, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if fetched.Status != StatusRunning || fetched.SourcePath != "/videos/my_summer-ad.mp4" {
		t.Fatalf("unexpected run: %+v", fetched)
	}

	result := &analysis.Result{
		Duration:              12.5,
		Captions:              make([]analysis.Caption, 3),
		SceneSegments:         make([]analysis.SceneSegment, 2),
		PerSecondDescriptions: make([]analysis.PerSecondDescription, 13),
		BackgroundUpdates:     make([]analysis.BackgroundUpdate, 1),
		AudioSegments:         make([]analysis.AudioSegment, 4),
	}
	if err := s.CompleteRun(ctx, run.ID, "/artifacts/run.json", result); err != nil {
		t.Fatalf("CompleteRun: %v", err)
	}

	fetched, err = s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun after complete: %v", err)
	}
	if fetched.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", fetched.Status)
	}
	if fetched.ArtifactPath != "/artifacts/run.json" || fetched.Duration != 12.5 {
		t.Fatalf("unexpected completion fields: %+v", fetched)
	}
	if fetched.CaptionCount != 3 || fetched.PerSecondCount != 13 || fetched.AudioCount != 4 {
		t.Fatalf("unexpected track counts: %+v", fetched)
	}
}

func TestFailRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("/videos/broken.mp4")
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := s.FailRun(ctx, run.ID, "ffprobe exploded"); err != nil {
		t.Fatalf("FailRun: %v", err)
	}
	fetched, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if fetched.Status != StatusFailed || fetched.ErrorMessage != "ffprobe exploded" {
		t.Fatalf("unexpected run: %+v", fetched)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetRun(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if err := s.FailRun(context.Background(), "missing", "x"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := NewRun("/videos/a.mp4")
	second := NewRun("/videos/b.mp4")
	second.CreatedAt = second.CreatedAt.Add(time.Millisecond) // ensure ordering
	if err := s.CreateRun(ctx, first); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := s.CreateRun(ctx, second); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID {
		t.Fatalf("unexpected order: %+v", runs)
	}

	limited, err := s.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 run, got %d", len(limited))
	}
}

func TestDeleteRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("/videos/c.mp4")
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if _, err := s.GetRun(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound after delete, got %v", err)
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/tmp/big_product.launch-v2.mp4", "Big Product Launch V2"},
		{"", "Untitled Video"},
		{"/tmp/____.mp4", "Untitled Video"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.in); got != tc.want {
			t.Fatalf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

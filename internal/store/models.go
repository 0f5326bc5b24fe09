package store

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RunStatus is the lifecycle state of one analysis run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one catalog entry: a single analysis of a single source video.
type Run struct {
	ID           string
	Title        string
	SourcePath   string
	ArtifactPath string
	Status       RunStatus
	Duration     float64
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Track counts recorded when a run completes.
	CaptionCount    int
	SceneCount      int
	PerSecondCount  int
	BackgroundCount int
	AudioCount      int
}

// NewRun builds a running catalog entry for the source video.
func NewRun(sourcePath string) *Run {
	now := time.Now().UTC()
	return &Run{
		ID:         uuid.NewString(),
		Title:      DeriveTitle(sourcePath),
		SourcePath: sourcePath,
		Status:     StatusRunning,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DeriveTitle produces a display title from the video filename: separators
// become spaces, anything non-alphanumeric is dropped, and the result is
// title-cased.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Untitled Video"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Video"
	}
	return cases.Title(language.Und).String(title)
}

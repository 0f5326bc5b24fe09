package analysis

import (
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeUniformFrame writes a solid-color JPEG usable as a sampled frame.
func writeUniformFrame(t *testing.T, dir, name string, level uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create frame: %v", err)
	}
	defer file.Close()
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	return path
}

func uniformSignature(level float64) signature {
	var sig signature
	for i := range sig {
		sig[i] = level
	}
	return sig
}

// stubServices is a scripted stand-in for the external model capabilities.
type stubServices struct {
	mu sync.Mutex

	captionFn func(framePath string, entities []string) CaptionPayload
	sceneFn   func(framePaths []string, tStart, tEnd float64) ScenePayload
	summarize func(req SummaryRequest) (string, error)
	justify   func(req JustifyRequest) ([]JustificationEntry, error)

	captionPaths   []string
	describePaths  []string
	summaryCalls   []SummaryRequest
	justifyCalls   []JustifyRequest
	entitySnapshot [][]string
}

func (s *stubServices) CaptionFrame(_ context.Context, framePath string, entities []string) (CaptionPayload, error) {
	s.mu.Lock()
	s.captionPaths = append(s.captionPaths, framePath)
	s.entitySnapshot = append(s.entitySnapshot, entities)
	s.mu.Unlock()
	if s.captionFn != nil {
		return s.captionFn(framePath, entities), nil
	}
	return CaptionPayload{Caption: "caption for " + filepath.Base(framePath), Confidence: 0.9}, nil
}

func (s *stubServices) DescribeFrame(_ context.Context, framePath string, _ []string) (DescriptionPayload, error) {
	s.mu.Lock()
	s.describePaths = append(s.describePaths, framePath)
	s.mu.Unlock()
	return DescriptionPayload{Description: "state of " + filepath.Base(framePath), Confidence: 0.8}, nil
}

func (s *stubServices) DescribeScene(_ context.Context, framePaths []string, _ []string, tStart, tEnd float64) (ScenePayload, error) {
	if s.sceneFn != nil {
		return s.sceneFn(framePaths, tStart, tEnd), nil
	}
	return ScenePayload{Description: "scene", Confidence: 0.7}, nil
}

func (s *stubServices) Summarize(_ context.Context, req SummaryRequest) (string, error) {
	s.mu.Lock()
	s.summaryCalls = append(s.summaryCalls, req)
	s.mu.Unlock()
	if s.summarize != nil {
		return s.summarize(req)
	}
	return "narration", nil
}

func (s *stubServices) Justify(_ context.Context, req JustifyRequest) ([]JustificationEntry, error) {
	s.mu.Lock()
	s.justifyCalls = append(s.justifyCalls, req)
	s.mu.Unlock()
	if s.justify != nil {
		return s.justify(req)
	}
	return nil, nil
}

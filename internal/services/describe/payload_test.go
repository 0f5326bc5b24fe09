package describe

import (
	"reflect"
	"testing"
)

func TestParsePayloadDirect(t *testing.T) {
	payload, _ := parsePayload(`{"caption":"a dog runs","actions":["run"],"confidence":0.9}`)
	if got := captionText(payload, ""); got != "a dog runs" {
		t.Fatalf("unexpected caption: %q", got)
	}
	if got := coerceList(payload.Actions); !reflect.DeepEqual(got, []string{"run"}) {
		t.Fatalf("unexpected actions: %v", got)
	}
	if got := clampConfidence(payload.Confidence); got != 0.9 {
		t.Fatalf("unexpected confidence: %v", got)
	}
}

func TestCaptionTextFallbackChain(t *testing.T) {
	payload, cleaned := parsePayload(`broken { "caption": "extracted caption", "x`)
	if got := captionText(payload, cleaned); got != "extracted caption" {
		t.Fatalf("expected field extraction, got %q", got)
	}

	payload, cleaned = parsePayload("```\njust prose, no json\n```")
	if got := captionText(payload, cleaned); got != "just prose, no json" {
		t.Fatalf("expected cleaned raw text, got %q", got)
	}
}

func TestDescriptionTextPlaceholderSuppressed(t *testing.T) {
	payload, cleaned := parsePayload(`{"description":"Unknown"}`)
	if got := descriptionText(payload, cleaned); got != "" {
		t.Fatalf("expected placeholder suppression, got %q", got)
	}
	payload, cleaned = parsePayload(`{"description":"a kitchen counter"}`)
	if got := descriptionText(payload, cleaned); got != "a kitchen counter" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestDescriptionTextFallsBackToCaption(t *testing.T) {
	payload, cleaned := parsePayload(`{"caption":"caption only"}`)
	if got := descriptionText(payload, cleaned); got != "caption only" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestCoerceListShapes(t *testing.T) {
	if got := coerceList("solo"); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Fatalf("string input: %v", got)
	}
	if got := coerceList([]any{"a", "b", "a", ""}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("dedup: %v", got)
	}
	if got := coerceList(nil); got != nil {
		t.Fatalf("nil input: %v", got)
	}
	if got := coerceList([]any{1.0, "x"}); !reflect.DeepEqual(got, []string{"1", "x"}) {
		t.Fatalf("mixed input: %v", got)
	}
}

func TestCoerceSetting(t *testing.T) {
	if got := coerceSetting([]any{"kitchen", "daytime"}); got != "kitchen, daytime" {
		t.Fatalf("list setting: %q", got)
	}
	if got := coerceSetting("office"); got != "office" {
		t.Fatalf("string setting: %q", got)
	}
}

func TestClampConfidence(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{0.5, 0.5},
		{-1.0, 0},
		{3.0, 1},
		{"0.7", 0.7},
		{"bogus", 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := clampConfidence(tc.in); got != tc.want {
			t.Fatalf("clampConfidence(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

package chat

import (
	"strings"
	"testing"
)

func TestDecodeModelJSONDirect(t *testing.T) {
	var parsed struct {
		Caption string `json:"caption"`
	}
	if err := DecodeModelJSON(`{"caption":"a dog"}`, &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Caption != "a dog" {
		t.Fatalf("unexpected caption: %q", parsed.Caption)
	}
}

func TestDecodeModelJSONCodeFence(t *testing.T) {
	var parsed struct {
		Caption string `json:"caption"`
	}
	content := "```json\n{\"caption\":\"fenced\"}\n```"
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Caption != "fenced" {
		t.Fatalf("unexpected caption: %q", parsed.Caption)
	}
}

func TestDecodeModelJSONEmbeddedObject(t *testing.T) {
	var parsed struct {
		Caption string `json:"caption"`
	}
	content := `Here is the result you asked for: {"caption":"embedded"} hope that helps!`
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Caption != "embedded" {
		t.Fatalf("unexpected caption: %q", parsed.Caption)
	}
}

func TestDecodeModelJSONEmbeddedArray(t *testing.T) {
	var parsed []struct {
		T float64 `json:"t"`
	}
	content := "The timeline follows.\n[{\"t\":1.0},{\"t\":2.0}]"
	if err := DecodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(parsed) != 2 || parsed[1].T != 2.0 {
		t.Fatalf("unexpected result: %+v", parsed)
	}
}

func TestDecodeModelJSONFailure(t *testing.T) {
	var parsed map[string]any
	err := DecodeModelJSON("total nonsense with no json at all", &parsed)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "payload snippet") {
		t.Fatalf("expected snippet in error, got %v", err)
	}
	if err := DecodeModelJSON("   ", &parsed); err == nil {
		t.Fatal("expected error for blank payload")
	}
}

func TestExtractField(t *testing.T) {
	content := `broken { "caption": "a person waves", "confidence": 0.8`
	if got := ExtractField(content, "caption"); got != "a person waves" {
		t.Fatalf("unexpected extraction: %q", got)
	}
	single := `{'description': 'single quoted'}`
	if got := ExtractField(single, "description"); got != "single quoted" {
		t.Fatalf("unexpected extraction: %q", got)
	}
	if got := ExtractField(content, "missing"); got != "" {
		t.Fatalf("expected empty extraction, got %q", got)
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("```\nplain prose\n```"); got != "plain prose" {
		t.Fatalf("unexpected clean text: %q", got)
	}
	if got := CleanText("  already clean  "); got != "already clean" {
		t.Fatalf("unexpected clean text: %q", got)
	}
}

func TestImageDataURL(t *testing.T) {
	url := ImageDataURL([]byte{1, 2, 3})
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data url: %q", url)
	}
}

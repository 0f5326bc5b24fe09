package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{"analyze": false, "runs": false, "status": false, "config": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v\noutput: %s", err, out.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !bytes.Contains(data, []byte("[analysis]")) {
		t.Fatalf("sample config missing analysis section:\n%s", data)
	}

	// A second init against the same path must refuse to overwrite.
	root = newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for existing config file")
	}
}

func TestShouldSkipConfig(t *testing.T) {
	root := newRootCommand()
	for _, cmd := range root.Commands() {
		if cmd.Name() != "config" {
			continue
		}
		for _, sub := range cmd.Commands() {
			if sub.Name() == "init" && !shouldSkipConfig(sub) {
				t.Fatal("config init must skip config loading")
			}
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("shortID: %q", got)
	}
	if got := formatSeconds(0); got != "-" {
		t.Fatalf("formatSeconds(0): %q", got)
	}
	if got := formatSeconds(12.34); got != "12.3s" {
		t.Fatalf("formatSeconds: %q", got)
	}
}

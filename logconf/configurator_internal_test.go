package logconf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reddit/automate.go/log"
)

const fileOnlyYML = `
handlers:
  file_handler:
    class: file
loggers:
  standard:
    handlers: [file_handler]
`

func TestGetLoggerBuildFailureKeepsFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(fileOnlyYML), 0600); err != nil {
		t.Fatalf("SETUP: failed to write config: %v", err)
	}
	t.Cleanup(func() {
		log.ReplaceGlobal(nil)
	})

	c, err := New(Options{
		SearchDir:   dir,
		LogFileDir:  t.TempDir(),
		ProgramName: "nightly",
		Cache:       new(Cache),
		Stdout:      new(bytes.Buffer),
		Stderr:      new(bytes.Buffer),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})

	if _, err := c.GetLogger("standard"); err != nil {
		t.Fatalf("GetLogger returned error: %v", err)
	}
	if got := c.files.Len(); got != 1 {
		t.Fatalf("Expected 1 open file, got %d", got)
	}

	h := c.doc.Handlers["file_handler"]
	h.Filename = ""
	c.doc.Handlers["file_handler"] = h
	if _, err := c.GetLogger("standard"); err == nil {
		t.Fatal("Expected GetLogger to fail without a filename")
	}
	if got := c.files.Len(); got != 1 {
		t.Errorf("previous file should stay tracked, got %d open file(s)", got)
	}

	log.Info("after failed rebuild")
	content, err := os.ReadFile(c.LogFile())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "after failed rebuild") {
		t.Errorf("global logger should keep writing to %q, got %q", c.LogFile(), content)
	}
}

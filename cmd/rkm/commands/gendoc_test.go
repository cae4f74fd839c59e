package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenDoc_Markdown(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := runGenDoc(&buf, dir, "markdown"); err != nil {
		t.Fatalf("runGenDoc() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rkm_lookup.md"))
	if err != nil {
		t.Fatalf("reading generated doc: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\ntitle: \"rkm lookup\"") {
		t.Errorf("missing frontmatter:\n%s", data)
	}
	if !strings.Contains(string(data), "/docs/reference/rkm/") {
		t.Errorf("links should use the reference path:\n%s", data)
	}
}

func TestGenDoc_Man(t *testing.T) {
	dir := t.TempDir()
	if err := runGenDoc(&bytes.Buffer{}, dir, "man"); err != nil {
		t.Fatalf("runGenDoc() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "rkm-backup-restore.1")); err != nil {
		t.Errorf("expected man page for backup restore: %v", err)
	}
}

func TestGenDoc_Errors(t *testing.T) {
	if err := runGenDoc(&bytes.Buffer{}, "", "markdown"); err == nil {
		t.Error("expected error without a directory")
	}
	if err := runGenDoc(&bytes.Buffer{}, t.TempDir(), "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLinkHandler(t *testing.T) {
	if got := linkHandler("rkm_Backup.md"); got != "/docs/reference/rkm_backup/" {
		t.Errorf("linkHandler() = %q", got)
	}
}

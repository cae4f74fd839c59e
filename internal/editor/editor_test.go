package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name   string
		rkm    string
		editor string
		visual string
		want   string
	}{
		{"rkm override wins", "hx", "nvim", "code", "hx"},
		{"EDITOR before VISUAL", "", "nvim", "code", "nvim"},
		{"VISUAL when EDITOR empty", "", "", "code", "code"},
		{"whitespace treated as unset", "  ", "", "vscode", "vscode"},
		{"arguments kept", "", "code --wait", "", "code --wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEditor, tt.rkm)
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			if got := detectEditor(); got != tt.want {
				t.Errorf("detectEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectEditor_FallbackNano(t *testing.T) {
	t.Setenv(EnvEditor, "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := detectEditor()

	if _, err := exec.LookPath("nano"); err == nil {
		if got != "nano" {
			t.Errorf("detectEditor() = %q, want %q (nano available)", got, "nano")
		}
	} else if got != "vi" {
		t.Errorf("detectEditor() = %q, want %q (nano not available)", got, "vi")
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping integration test on windows (uses shell script mock)")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	// The mock records its arguments and appends a binding to the file.
	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\nlast=\"\"\nfor a in \"$@\"; do last=\"$a\"; done\necho 'KEY 1 66 40002 0' >> \"$last\"\necho edited\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvEditor, mockEditor+" --wait")

	targetFile := filepath.Join(tmpDir, "main.ReaperKeyMap")
	if err := os.WriteFile(targetFile, []byte("KEY 1 65 40001 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	l := New(WithIO(strings.NewReader(""), &stdout, &bytes.Buffer{}))
	if err := l.Open(t.Context(), targetFile); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if want := "--wait " + targetFile; !strings.Contains(string(got), want) {
		t.Errorf("mock editor args = %q, want %q", string(got), want)
	}
	if !strings.Contains(stdout.String(), "edited") {
		t.Errorf("editor stdout = %q, want it captured", stdout.String())
	}

	content, err := os.ReadFile(targetFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "KEY 1 66 40002 0") {
		t.Errorf("target not edited: %q", content)
	}
}

func TestOpen_NoEditor(t *testing.T) {
	t.Setenv(EnvEditor, "non-existent-binary-12345")

	if err := Open(t.Context(), "test.ReaperKeyMap"); err == nil {
		t.Error("expected error for non-existent editor, got nil")
	}
}

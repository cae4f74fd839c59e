package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/thoreinstein/rkm/internal/config"
	"github.com/thoreinstein/rkm/internal/errors"
)

func resetCheckFlags(t *testing.T) {
	t.Helper()
	origFormat, origStrict, origNotes := checkFormat, checkStrict, checkNotes
	t.Cleanup(func() {
		checkFormat, checkStrict, checkNotes = origFormat, origStrict, origNotes
	})
	checkFormat, checkStrict, checkNotes = "text", false, false
}

func TestCheck_Clean(t *testing.T) {
	resetCheckFlags(t)
	path := writeKeymap(t, testKeymap)

	var buf bytes.Buffer
	if err := runCheckWithWriter(t.Context(), &buf, path, false); err != nil {
		t.Fatalf("runCheckWithWriter() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Validation passed") {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if strings.Contains(buf.String(), "disabled") {
		t.Error("notes should be hidden without --notes")
	}
}

func TestCheck_Notes(t *testing.T) {
	resetCheckFlags(t)
	checkNotes = true
	path := writeKeymap(t, testKeymap)

	var buf bytes.Buffer
	if err := runCheckWithWriter(t.Context(), &buf, path, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Control+A") {
		t.Errorf("notes should mention the disabled binding: %s", buf.String())
	}
}

func TestCheck_SkippedLines(t *testing.T) {
	path := writeKeymap(t, testKeymap+brokenLine+"\n")

	t.Run("warning by default", func(t *testing.T) {
		resetCheckFlags(t)
		var buf bytes.Buffer
		if err := runCheckWithWriter(t.Context(), &buf, path, false); err != nil {
			t.Fatalf("skipped lines should not fail without --strict: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "line 10") {
			t.Errorf("report should name the line number: %s", out)
		}
		if !strings.Contains(out, brokenLine) {
			t.Errorf("report should quote the line: %s", out)
		}
	})

	t.Run("error when strict", func(t *testing.T) {
		resetCheckFlags(t)
		var buf bytes.Buffer
		err := runCheckWithWriter(t.Context(), &buf, path, true)
		if !errors.Is(err, errors.ErrSkippedLines) {
			t.Fatalf("expected ErrSkippedLines, got %v", err)
		}
		var exitErr *errors.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
			t.Errorf("expected exit code %d, got %v", errors.ExitUser, err)
		}
		if !strings.Contains(buf.String(), "Validation failed") {
			t.Errorf("report should still be written: %s", buf.String())
		}
	})
}

func TestCheck_Conflict(t *testing.T) {
	resetCheckFlags(t)
	path := writeKeymap(t, testKeymap+"KEY 9 77 40023 0\n")

	var buf bytes.Buffer
	if err := runCheckWithWriter(t.Context(), &buf, path, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Cmd+M") {
		t.Errorf("conflict should name the trigger: %s", buf.String())
	}
}

func TestCheck_JSON(t *testing.T) {
	resetCheckFlags(t)
	checkFormat = "json"
	path := writeKeymap(t, testKeymap+brokenLine+"\n")

	var buf bytes.Buffer
	if err := runCheckWithWriter(t.Context(), &buf, path, false); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Entries int `json:"entries"`
		Issues  []struct {
			Severity string `json:"severity"`
			Line     int    `json:"line"`
			Kind     string `json:"kind"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Entries != 8 {
		t.Errorf("entries = %d, want 8", got.Entries)
	}
	found := false
	for _, i := range got.Issues {
		if i.Line == 10 && i.Kind == "invalid_number" && i.Severity == "warning" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing skipped-line issue: %s", buf.String())
	}
}

func TestCheck_Errors(t *testing.T) {
	resetCheckFlags(t)
	withConfig(t, config.Default())

	checkFormat = "xml"
	var exitErr *errors.ExitError
	if err := runCheckWithWriter(t.Context(), &bytes.Buffer{}, writeKeymap(t, testKeymap), false); !errors.As(err, &exitErr) {
		t.Errorf("unknown format: expected ExitError, got %v", err)
	}

	checkFormat = "text"
	err := runCheckWithWriter(t.Context(), &bytes.Buffer{}, "/nonexistent/x.ReaperKeyMap", false)
	if !errors.Is(err, errors.ErrKeymapNotFound) {
		t.Errorf("missing file: expected ErrKeymapNotFound, got %v", err)
	}
}

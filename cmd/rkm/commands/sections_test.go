package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestSections(t *testing.T) {
	var buf bytes.Buffer
	if err := runSectionsWithWriter(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header, Main, 16 alternates, recording, 4 MIDI/explorer sections
	if len(lines) != 1+1+16+1+4 {
		t.Errorf("got %d lines:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"32060", "MidiEditor", "MIDI Editor", "MainAlt16", "Main (alt-16)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

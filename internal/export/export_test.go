package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rkmerrors "github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

const sample = `KEY 9 77 40001 0 # Main : Cmd+M : OVERRIDE DEFAULT : Track: Insert new track
KEY 255 120 989 0
KEY 255 12520 40044 32060
KEY 33 65 0 0
SCR 4 0 "_Script: Test" "Some description" /path/to/x.lua
SCR 260 32060 _RS_midi_tool "MIDI tool" "/Users/me/midi tool.lua"
ACT 3 0 "_a1b2c3" "Custom: Insert and arm" 40001 40294
ACT 0 32060 "_d4e5f6" "Custom: empty"
`

func loadSample(t *testing.T) keymap.List {
	t.Helper()
	list, report, err := keymap.Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.False(t, report.HasSkipped())
	return list
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	list := loadSample(t)
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(list, f)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			back, err := Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, list, back)
		})
	}
}

func TestEncode_Shapes(t *testing.T) {
	list := loadSample(t)[:1]

	js, err := Encode(list, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"Key": {`)

	y, err := Encode(list, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(y), "- Key:")
	assert.Contains(t, string(y), "regular: 77")
	assert.Contains(t, string(y), `command_id: "40001"`)

	tm, err := Encode(list, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(tm), "entries")
	assert.Contains(t, string(tm), "regular = 77")
	assert.NotContains(t, string(tm), "77.0")
}

func TestEncode_Empty(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(nil, f)
			require.NoError(t, err)
			back, err := Decode(data, f)
			require.NoError(t, err)
			assert.Empty(t, back)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		f    Format
	}{
		{"bad json", `[{`, FormatJSON},
		{"bad yaml", "- Key: [", FormatYAML},
		{"bad toml", "entries = [", FormatTOML},
		{"invalid entry in yaml", "- Script:\n    termination_behavior: Prompt\n    section: Nowhere\n    command_id: a\n    description: b\n    path: /c\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.f)
			assert.Error(t, err)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{" toml ", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rkmerrors.ErrUnknownFormat))
	assert.Contains(t, err.Error(), "json, yaml, toml")

	_, err = Encode(nil, "xml")
	assert.True(t, errors.Is(err, rkmerrors.ErrUnknownFormat))
	_, err = Decode(nil, "xml")
	assert.True(t, errors.Is(err, rkmerrors.ErrUnknownFormat))
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath("out/keys.yml")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = FormatFromPath("keys.ReaperKeyMap")
	assert.False(t, ok)
	_, ok = FormatFromPath("keys")
	assert.False(t, ok)
}

func TestWriteReadFile(t *testing.T) {
	list := loadSample(t)
	dir := t.TempDir()
	for _, name := range []string{"keys.json", "keys.yaml", "keys.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, ok := FormatFromPath(path)
			require.True(t, ok)
			require.NoError(t, WriteFile(path, list, f))

			back, err := ReadFile(path, "")
			require.NoError(t, err)
			assert.Equal(t, list, back)
		})
	}

	_, err := ReadFile(filepath.Join(dir, "keys.txt"), "")
	assert.True(t, errors.Is(err, rkmerrors.ErrUnknownFormat))
}

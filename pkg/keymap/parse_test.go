package keymap

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Key(t *testing.T) {
	e, err := ParseLine("KEY 9 77 40001 0 # Main : Cmd+M : OVERRIDE DEFAULT : Track: Insert new track")
	require.NoError(t, err)
	k, ok := e.(KeyBinding)
	require.True(t, ok, "got %T", e)

	assert.Equal(t, TagKey, k.Tag())
	assert.Equal(t, ModSuper, k.Modifiers())
	assert.Equal(t, RegularInput(KeyM), k.Input())
	assert.Equal(t, "40001", k.CommandID())
	assert.Equal(t, SectionMain, k.Section())

	c, ok := k.Comment()
	require.True(t, ok)
	assert.Equal(t, "Track: Insert new track", c.ActionDescription)
	assert.True(t, c.IsOverride())
}

func TestParseLine_KeySpecial(t *testing.T) {
	e, err := ParseLine("KEY 255 248 40431 32060 # MIDI Editor : Mousewheel : OVERRIDE DEFAULT : View: Zoom horizontally (MIDI CC relative/mousewheel)")
	require.NoError(t, err)
	k := e.(KeyBinding)

	assert.True(t, k.Modifiers().IsSpecialInput())
	s, ok := k.Input().Special()
	require.True(t, ok)
	assert.Equal(t, Mousewheel, s.Kind)
	assert.Equal(t, SectionMIDIEditor, k.Section())

	c, _ := k.Comment()
	assert.True(t, c.IsRelativeControl)
	assert.Equal(t, "View: Zoom horizontally", c.ActionName)
}

func TestParseLine_KeyComments(t *testing.T) {
	e, err := ParseLine("KEY 1 65 40001 0")
	require.NoError(t, err)
	_, ok := e.(KeyBinding).Comment()
	assert.False(t, ok, "no comment on the line")

	e, err = ParseLine("KEY 1 65 40001 0 # not a structured comment")
	require.NoError(t, err, "a malformed comment never fails the line")
	_, ok = e.(KeyBinding).Comment()
	assert.False(t, ok)

	e, err = ParseLine("  KEY 1 65 _RS7d3c9a 0   #Main:A  ")
	require.NoError(t, err)
	k := e.(KeyBinding)
	assert.Equal(t, "_RS7d3c9a", k.CommandID())
	c, ok := k.Comment()
	require.True(t, ok)
	assert.Equal(t, "A", c.KeyCombination)
}

func TestParseLine_ScriptQuoting(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ScriptBinding
	}{
		{
			name: "quoted command id and bare path",
			line: `SCR 4 0 "_Script: Test" "Some description" /path/to/x.lua`,
			want: ScriptBinding{
				Termination: TerminationPrompt,
				Section:     SectionMain,
				CommandID:   "_Script: Test",
				Description: "Some description",
				Path:        "/path/to/x.lua",
			},
		},
		{
			name: "bare command id and quoted path",
			line: `SCR 4 0 _Script_Test "My Test" "/path with spaces/x.lua"`,
			want: ScriptBinding{
				Termination: TerminationPrompt,
				Section:     SectionMain,
				CommandID:   "_Script_Test",
				Description: "My Test",
				Path:        "/path with spaces/x.lua",
			},
		},
		{
			name: "bare everything with trailing comment",
			line: `SCR 260 32060 _RS1 "MIDI tool" C:\Scripts\tool.lua # note`,
			want: ScriptBinding{
				Termination: TerminationTerminateExisting,
				Section:     SectionMIDIEditor,
				CommandID:   "_RS1",
				Description: "MIDI tool",
				Path:        `C:\Scripts\tool.lua`,
			},
		},
		{
			name: "hash inside quoted path",
			line: `SCR 516 0 _RS2 "Take #2" "/tmp/take #2.lua"`,
			want: ScriptBinding{
				Termination: TerminationAlwaysNewInstance,
				Section:     SectionMain,
				CommandID:   "_RS2",
				Description: "Take #2",
				Path:        "/tmp/take #2.lua",
			},
		},
		{
			name: "escaped quotes and backslashes",
			line: `SCR 4 0 _RS3 "Say \"hi\"" "C:\\My Scripts\\x.lua"`,
			want: ScriptBinding{
				Termination: TerminationPrompt,
				Section:     SectionMain,
				CommandID:   "_RS3",
				Description: `Say "hi"`,
				Path:        `C:\My Scripts\x.lua`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e)
		})
	}
}

func TestParseLine_Action(t *testing.T) {
	e, err := ParseLine(`ACT 3 0 "_a1b2c3" "Custom: Insert and arm" 40001 40294 _RS9`)
	require.NoError(t, err)
	assert.Equal(t, CustomActionBinding{
		Flags:       ActionConsolidateUndo | ActionShowInMenus,
		Section:     SectionMain,
		CommandID:   "_a1b2c3",
		Description: "Custom: Insert and arm",
		ActionIDs:   []string{"40001", "40294", "_RS9"},
	}, e)

	e, err = ParseLine(`ACT 0 32060 "_d4e5f6" "Custom: empty"`)
	require.NoError(t, err)
	assert.Nil(t, e.(CustomActionBinding).ActionIDs)

	e, err = ParseLine(`ACT 255 0 "id" "unknown bits"`)
	require.NoError(t, err)
	assert.Equal(t, ActionFlagsFromBits(255), e.(CustomActionBinding).Flags)

	e, err = ParseLine(`ACT 0 0 "id" "Say \"hi\" \\ now" 1`)
	require.NoError(t, err)
	assert.Equal(t, `Say "hi" \ now`, e.(CustomActionBinding).Description)
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		line      string
		wantErr   error
		wantKind  string
		wantTag   string
		wantField string
	}{
		{"INVALID_TAG 1 2 3", ErrInvalidTag, "invalid_tag", "<line>", "tag"},
		{"", ErrMissingField, "missing_field", "<line>", "tag"},
		{"# only a comment", ErrMissingField, "missing_field", "<line>", "tag"},
		{"KEY", ErrMissingField, "missing_field", "KEY", "modifiers"},
		{"KEY 1 65 40001", ErrMissingField, "missing_field", "KEY", "section"},
		{"KEY abc 65 40044 0", ErrInvalidNumber, "invalid_number", "KEY", "modifiers"},
		{"KEY 1 -5 40044 0", ErrInvalidNumber, "invalid_number", "KEY", "key_code"},
		{"KEY 0 65 40044 0", ErrInvalidModifier, "invalid_modifier", "KEY", "modifiers"},
		{"KEY 2 65 40044 0", ErrInvalidModifier, "invalid_modifier", "KEY", "modifiers"},
		{"KEY 256 65 40044 0", ErrInvalidModifier, "invalid_modifier", "KEY", "modifiers"},
		{"KEY 1 7 40044 0", ErrInvalidKeyCode, "invalid_key_code", "KEY", "key_code"},
		{"KEY 1 65536 40044 0", ErrInvalidKeyCode, "invalid_key_code", "KEY", "key_code"},
		{"KEY 1 65 40044 99", ErrInvalidSection, "invalid_section", "KEY", "section"},
		{"KEY 1 65 40044 4294967296", ErrInvalidSection, "invalid_section", "KEY", "section"},
		{"SCR 999 0 test desc path", ErrInvalidTermination, "invalid_termination", "SCR", "termination"},
		{"SCR x 0 test desc path", ErrInvalidNumber, "invalid_number", "SCR", "termination"},
		{"SCR 4", ErrMissingField, "missing_field", "SCR", "section"},
		{"SCR 4 0 test desc path", ErrMissingField, "missing_field", "SCR", "description"},
		{`SCR 4 0 "id" "desc"`, ErrMissingField, "missing_field", "SCR", "path"},
		{`SCR 4 0 "id"`, ErrMissingField, "missing_field", "SCR", "description"},
		{`SCR 4 1000 "id" "desc" x`, ErrInvalidSection, "invalid_section", "SCR", "section"},
		{`ACT x 0 "id" "desc"`, ErrInvalidNumber, "invalid_number", "ACT", "flags"},
		{`ACT 0 0 "id"`, ErrMissingField, "missing_field", "ACT", "description"},
		{`ACT 0 0 id desc`, ErrMissingField, "missing_field", "ACT", "command_id"},
		{`ACT 0`, ErrMissingField, "missing_field", "ACT", "section"},
		{`KEY 1 65 _a"b 0`, ErrInvalidCommandID, "invalid_command_id", "KEY", "command_id"},
		{`SCR 4 0 a b "desc" /p.lua`, ErrInvalidCommandID, "invalid_command_id", "SCR", "command_id"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantKind, pe.Kind())
			assert.Equal(t, tt.wantTag, pe.Tag)
			assert.Equal(t, tt.wantField, pe.Field)
		})
	}
}

func TestParseLine_ErrorKindsAreDistinct(t *testing.T) {
	lines := []string{"INVALID_TAG 1 2 3", "KEY", "KEY abc 65 40044 0", "SCR 999 0 test desc path", `KEY 1 65 _a"b 0`}
	kinds := make(map[string]bool)
	for _, line := range lines {
		_, err := ParseLine(line)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), line)
		kinds[pe.Kind()] = true
	}
	assert.Len(t, kinds, len(lines))
}

func TestParseError_Message(t *testing.T) {
	_, err := ParseLine("KEY abc 65 40044 0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEY entry: modifiers: invalid number")
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestScanSegments(t *testing.T) {
	tests := []struct {
		in   string
		want segments
	}{
		{`a b c`, segments{`a b c`}},
		{`a "b" c`, segments{`a `, `b`, ` c`}},
		{`a "b" "c d"`, segments{`a `, `b`, ` `, `c d`, ``}},
		{`"x \"y\" \\ z"`, segments{``, `x "y" \ z`, ``}},
		{`"C:\dir"`, segments{``, `C:\dir`, ``}},
		{`a "unterminated`, segments{`a `, `unterminated`}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, scanSegments(tt.in))
		})
	}
}

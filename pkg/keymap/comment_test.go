package keymap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Comment
	}{
		{
			name: "flag and description with colon",
			text: "# Main : Cmd+N : OVERRIDE DEFAULT : File: New project",
			want: Comment{
				Section:           "Main",
				KeyCombination:    "Cmd+N",
				BehaviorFlag:      "OVERRIDE DEFAULT",
				ActionDescription: "File: New project",
				ActionName:        "File: New project",
			},
		},
		{
			name: "two fields",
			text: "# Main : Cmd+N",
			want: Comment{Section: "Main", KeyCombination: "Cmd+N"},
		},
		{
			name: "three fields with flag",
			text: "# Main : Control+A : DISABLED DEFAULT",
			want: Comment{Section: "Main", KeyCombination: "Control+A", BehaviorFlag: "DISABLED DEFAULT"},
		},
		{
			name: "three fields without flag",
			text: "# Main : Space : Play",
			want: Comment{Section: "Main", KeyCombination: "Space", ActionDescription: "Play", ActionName: "Play"},
		},
		{
			name: "description without flag keeps every field",
			text: "# Main : Space : Transport: Play/stop",
			want: Comment{
				Section:           "Main",
				KeyCombination:    "Space",
				ActionDescription: "Transport: Play/stop",
				ActionName:        "Transport: Play/stop",
			},
		},
		{
			name: "flag detected by substring",
			text: "# Main : F1 : OVERRIDE DEFAULT (2) : Help",
			want: Comment{
				Section:           "Main",
				KeyCombination:    "F1",
				BehaviorFlag:      "OVERRIDE DEFAULT (2)",
				ActionDescription: "Help",
				ActionName:        "Help",
			},
		},
		{
			name: "without hash",
			text: "MIDI Editor : Shift+Mousewheel",
			want: Comment{Section: "MIDI Editor", KeyCombination: "Shift+Mousewheel"},
		},
		{
			name: "empty key combination",
			text: "# Main :  : OVERRIDE DEFAULT : Something",
			want: Comment{
				Section:           "Main",
				BehaviorFlag:      "OVERRIDE DEFAULT",
				ActionDescription: "Something",
				ActionName:        "Something",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseComment(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseComment_Rejects(t *testing.T) {
	for _, text := range []string{"", "#", "#   ", "# just some words", "# : Cmd+N"} {
		_, ok := ParseComment(text)
		assert.False(t, ok, "%q", text)
	}
}

func TestParseComment_RelativeControl(t *testing.T) {
	tests := []struct {
		text         string
		wantRelative bool
		wantName     string
	}{
		{
			text:         "# MIDI Editor : Mousewheel : OVERRIDE DEFAULT : View: Zoom horizontally (MIDI CC relative/mousewheel)",
			wantRelative: true,
			wantName:     "View: Zoom horizontally",
		},
		{
			text:         "# Main : Alt+Mousewheel : OVERRIDE DEFAULT : Track: Adjust volume (MIDI relative/mousewheel)",
			wantRelative: true,
			wantName:     "Track: Adjust volume",
		},
		{
			text:         "# Main : Cmd+M : OVERRIDE DEFAULT : Track: Insert new track",
			wantRelative: false,
			wantName:     "Track: Insert new track",
		},
		{
			text:         "# Main : F2 : OVERRIDE DEFAULT : Item: Split (at cursor)",
			wantRelative: false,
			wantName:     "Item: Split",
		},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			c, ok := ParseComment(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.wantRelative, c.IsRelativeControl)
			assert.Equal(t, tt.wantName, c.ActionName)
		})
	}
}

func TestComment_LineRoundTrip(t *testing.T) {
	lines := []string{
		"# Main : Cmd+N : OVERRIDE DEFAULT : File: New project",
		"# Main : Cmd+N",
		"# Main : Control+A : DISABLED DEFAULT",
		"# MIDI Editor : Mousewheel : View: Zoom (MIDI CC relative/mousewheel)",
	}
	for _, line := range lines {
		c, ok := ParseComment(line)
		require.True(t, ok, line)
		assert.Equal(t, line, c.Line())

		again, ok := ParseComment(c.Line())
		require.True(t, ok)
		assert.Equal(t, c, again)
	}
}

func TestComment_Flags(t *testing.T) {
	c := NewComment("Main", "A", FlagDisabledDefault, "")
	assert.True(t, c.IsDisabled())
	assert.False(t, c.IsOverride())

	c = NewComment("Main", "A", FlagOverrideDefault, "x")
	assert.True(t, c.IsOverride())
	assert.False(t, c.IsDisabled())
}

func TestDeriveComment(t *testing.T) {
	b, err := NewKeyBinding(ModSuper|ModShift, RegularInput(KeyM), "40001", SectionMain)
	require.NoError(t, err)
	c := DeriveComment(b)
	assert.Equal(t, NewComment("Main", "Cmd+Shift+M", FlagOverrideDefault, ""), c)
	assert.Equal(t, "# Main : Cmd+Shift+M : OVERRIDE DEFAULT", c.Line())

	b, err = NewKeyBinding(ModControl, RegularInput(KeyA), "0", SectionMain)
	require.NoError(t, err)
	assert.Equal(t, FlagDisabledDefault, DeriveComment(b).BehaviorFlag)

	b, err = NewSpecialBinding(SpecialInputOf(AltHorizWheel), "40138", SectionMIDIEditor)
	require.NoError(t, err)
	c = DeriveComment(b)
	assert.Equal(t, "MIDI Editor", c.Section)
	assert.Equal(t, "Alt+HorizWheel", c.KeyCombination)

	b, err = NewKeyBinding(ModAlt, RegularInput(KeyF1+4), "_RS1", Section(1))
	require.NoError(t, err)
	assert.Equal(t, "# Main (alt-1) : Opt+F5 : OVERRIDE DEFAULT", DeriveComment(b).Line())
}

func TestComment_UnmarshalRecomputesDerived(t *testing.T) {
	data := `{
		"section": "Main",
		"key_combination": "Mousewheel",
		"behavior_flag": "OVERRIDE DEFAULT",
		"action_description": "View: Zoom (MIDI relative/mousewheel)",
		"action_name": "stale",
		"is_relative_control": false
	}`
	var c Comment
	require.NoError(t, json.Unmarshal([]byte(data), &c))
	assert.Equal(t, "View: Zoom", c.ActionName)
	assert.True(t, c.IsRelativeControl)
}

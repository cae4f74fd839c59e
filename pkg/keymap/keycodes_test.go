package keymap

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCodeFromCode(t *testing.T) {
	tests := []struct {
		code     uint16
		wantOK   bool
		wantName string
	}{
		{65, true, "A"},
		{77, true, "M"},
		{48, true, "0"},
		{32, true, "Space"},
		{27, true, "ESC"},
		{0x60, true, "NumPad 0"},
		{0x6B, true, "NumPad Add"},
		{0x70, true, "F1"},
		{0x87, true, "F24"},
		{0xBA, true, ";"},
		{0, false, "Key(0)"},
		{7, false, "Key(7)"},
		{0x5B, false, "Key(91)"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			k, ok := KeyCodeFromCode(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, k.Valid())
			assert.Equal(t, tt.wantName, k.String())
		})
	}
}

func TestKeyCodeFromName(t *testing.T) {
	for code, name := range keyNames {
		got, ok := KeyCodeFromName(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, code, got, "name %q", name)
	}

	aliases := map[string]KeyCode{
		"escape": KeyEscape,
		"esc":    KeyEscape,
		"Return": KeyEnter,
		"del":    KeyDelete,
		" f5 ":   KeyF1 + 4,
	}
	for name, want := range aliases {
		got, ok := KeyCodeFromName(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, want, got, "name %q", name)
	}

	_, ok := KeyCodeFromName("Hyper")
	assert.False(t, ok)
}

func TestKeyNamesHaveNoPlus(t *testing.T) {
	for code, name := range keyNames {
		assert.NotContains(t, name, "+", "key %d", code)
	}
}

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput(65, ModShift)
	require.NoError(t, err)
	assert.False(t, in.IsSpecial())
	k, ok := in.Key()
	require.True(t, ok)
	assert.Equal(t, KeyA, k)
	assert.Equal(t, uint16(65), in.Code())

	_, err = DecodeInput(7, ModNone)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKeyCode))

	in, err = DecodeInput(7, ModSpecialInput)
	require.NoError(t, err)
	s, ok := in.Special()
	require.True(t, ok)
	assert.Equal(t, SpecialUnknown, s.Kind)
	assert.Equal(t, "Unknown(7)", in.String())
}

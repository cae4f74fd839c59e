package keymap

import (
	"fmt"
	"strings"
)

// KeyCode is a keyboard key in keymap files. Values are Windows virtual-key
// codes, which the host uses on every platform.
type KeyCode uint16

// Named key codes. Letters and digits use their ASCII values and are covered
// by KeyA..KeyZ and Key0..Key9.
const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyClear     KeyCode = 0x0C
	KeyEnter     KeyCode = 0x0D
	KeyPause     KeyCode = 0x13
	KeyCapsLock  KeyCode = 0x14
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeySelect    KeyCode = 0x29
	KeyPrint     KeyCode = 0x2A
	KeyExecute   KeyCode = 0x2B
	KeySnapshot  KeyCode = 0x2C
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
	KeyHelp      KeyCode = 0x2F

	Key0 KeyCode = '0'
	Key9 KeyCode = '9'
	KeyA KeyCode = 'A'
	KeyB KeyCode = 'B'
	KeyC KeyCode = 'C'
	KeyM KeyCode = 'M'
	KeyN KeyCode = 'N'
	KeyZ KeyCode = 'Z'

	KeyNumPad0   KeyCode = 0x60
	KeyNumPad9   KeyCode = 0x69
	KeyMultiply  KeyCode = 0x6A
	KeyAdd       KeyCode = 0x6B
	KeySeparator KeyCode = 0x6C
	KeySubtract  KeyCode = 0x6D
	KeyDecimal   KeyCode = 0x6E
	KeyDivide    KeyCode = 0x6F

	KeyF1  KeyCode = 0x70
	KeyF24 KeyCode = 0x87

	KeyNumLock    KeyCode = 0x90
	KeyScrollLock KeyCode = 0x91

	KeySemicolon    KeyCode = 0xBA
	KeyEquals       KeyCode = 0xBB
	KeyComma        KeyCode = 0xBC
	KeyMinus        KeyCode = 0xBD
	KeyPeriod       KeyCode = 0xBE
	KeySlash        KeyCode = 0xBF
	KeyBacktick     KeyCode = 0xC0
	KeyLeftBracket  KeyCode = 0xDB
	KeyBackslash    KeyCode = 0xDC
	KeyRightBracket KeyCode = 0xDD
	KeyQuote        KeyCode = 0xDE
)

var namedKeys = map[KeyCode]string{
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyClear:        "Clear",
	KeyEnter:        "Enter",
	KeyPause:        "Pause",
	KeyCapsLock:     "CapsLock",
	KeyEscape:       "ESC",
	KeySpace:        "Space",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyEnd:          "End",
	KeyHome:         "Home",
	KeyLeft:         "Left",
	KeyUp:           "Up",
	KeyRight:        "Right",
	KeyDown:         "Down",
	KeySelect:       "Select",
	KeyPrint:        "Print",
	KeyExecute:      "Execute",
	KeySnapshot:     "PrintScreen",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyHelp:         "Help",
	KeyMultiply:     "NumPad Multiply",
	KeyAdd:          "NumPad Add",
	KeySeparator:    "NumPad Separator",
	KeySubtract:     "NumPad Subtract",
	KeyDecimal:      "NumPad Decimal",
	KeyDivide:       "NumPad Divide",
	KeyNumLock:      "NumLock",
	KeyScrollLock:   "ScrollLock",
	KeySemicolon:    ";",
	KeyEquals:       "=",
	KeyComma:        ",",
	KeyMinus:        "-",
	KeyPeriod:       ".",
	KeySlash:        "/",
	KeyBacktick:     "`",
	KeyLeftBracket:  "[",
	KeyBackslash:    "\\",
	KeyRightBracket: "]",
	KeyQuote:        "'",
}

// keyNames is the full code table; keyCodesByName is its lower-cased inverse.
var (
	keyNames       = buildKeyNames()
	keyCodesByName = buildKeyCodesByName()
)

func buildKeyNames() map[KeyCode]string {
	names := make(map[KeyCode]string, len(namedKeys)+80)
	for code, name := range namedKeys {
		names[code] = name
	}
	for c := Key0; c <= Key9; c++ {
		names[c] = string(rune(c))
	}
	for c := KeyA; c <= KeyZ; c++ {
		names[c] = string(rune(c))
	}
	for c := KeyNumPad0; c <= KeyNumPad9; c++ {
		names[c] = fmt.Sprintf("NumPad %d", c-KeyNumPad0)
	}
	for c := KeyF1; c <= KeyF24; c++ {
		names[c] = fmt.Sprintf("F%d", c-KeyF1+1)
	}
	return names
}

func buildKeyCodesByName() map[string]KeyCode {
	byName := make(map[string]KeyCode, len(keyNames)+4)
	for code, name := range keyNames {
		byName[strings.ToLower(name)] = code
	}
	// Common aliases.
	byName["escape"] = KeyEscape
	byName["return"] = KeyEnter
	byName["del"] = KeyDelete
	return byName
}

// KeyCodeFromCode validates a numeric key code against the key table.
func KeyCodeFromCode(code uint16) (KeyCode, bool) {
	k := KeyCode(code)
	_, ok := keyNames[k]
	return k, ok
}

// KeyCodeFromName looks up a key by its display name, case-insensitively.
func KeyCodeFromName(name string) (KeyCode, bool) {
	k, ok := keyCodesByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Valid reports whether k is in the key table.
func (k KeyCode) Valid() bool {
	_, ok := keyNames[k]
	return ok
}

// String returns the display name of the key, or "Key(n)" for codes outside
// the table.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

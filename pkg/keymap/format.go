package keymap

import (
	"strconv"
	"strings"
	"unicode"
)

// FormatLine renders an entry as a keymap line without a trailing newline.
// KEY lines always carry a comment: the stored one or DeriveComment's.
func FormatLine(e Entry) string {
	var sb strings.Builder
	switch v := e.(type) {
	case KeyBinding:
		sb.WriteString(string(TagKey))
		writeUint(&sb, uint64(v.mods.Code()))
		writeUint(&sb, uint64(v.input.Code()))
		sb.WriteByte(' ')
		sb.WriteString(v.commandID)
		writeUint(&sb, uint64(v.section))
		sb.WriteByte(' ')
		sb.WriteString(v.EffectiveComment().Line())
	case ScriptBinding:
		sb.WriteString(string(TagScript))
		writeUint(&sb, uint64(v.Termination))
		writeUint(&sb, uint64(v.Section))
		sb.WriteByte(' ')
		if isBareToken(v.CommandID) {
			sb.WriteString(v.CommandID)
		} else {
			sb.WriteString(quote(v.CommandID))
		}
		sb.WriteByte(' ')
		sb.WriteString(quote(v.Description))
		sb.WriteByte(' ')
		if needsQuote(v.Path) {
			sb.WriteString(quote(v.Path))
		} else {
			sb.WriteString(v.Path)
		}
	case CustomActionBinding:
		sb.WriteString(string(TagAction))
		writeUint(&sb, uint64(v.Flags.Bits()))
		writeUint(&sb, uint64(v.Section))
		sb.WriteByte(' ')
		sb.WriteString(quote(v.CommandID))
		sb.WriteByte(' ')
		sb.WriteString(quote(v.Description))
		for _, id := range v.ActionIDs {
			sb.WriteByte(' ')
			sb.WriteString(id)
		}
	}
	return sb.String()
}

func writeUint(sb *strings.Builder, n uint64) {
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(n, 10))
}

// needsQuote reports whether a path must be quoted to read back unchanged.
func needsQuote(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '#'
	})
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

package keymap

import (
	"strconv"
	"strings"
)

// ParseLine parses a single KEY, SCR or ACT line. Errors are always
// *ParseError.
func ParseLine(line string) (Entry, error) {
	data, comment := splitComment(line)
	tokens := strings.Fields(data)
	if len(tokens) == 0 {
		return nil, missingField(lineTag, "tag")
	}

	switch Tag(tokens[0]) {
	case TagKey:
		return parseKey(tokens, comment)
	case TagScript:
		return parseScript(data)
	case TagAction:
		return parseAction(data)
	default:
		return nil, &ParseError{Tag: lineTag, Field: "tag", Value: tokens[0], Err: ErrInvalidTag}
	}
}

func parseKey(tokens []string, comment string) (Entry, error) {
	const tag = string(TagKey)
	if len(tokens) < 2 {
		return nil, missingField(tag, "modifiers")
	}
	if len(tokens) < 3 {
		return nil, missingField(tag, "key_code")
	}
	if len(tokens) < 4 {
		return nil, missingField(tag, "command_id")
	}
	if len(tokens) < 5 {
		return nil, missingField(tag, "section")
	}

	rawMods, err := parseNumber(tag, "modifiers", tokens[1])
	if err != nil {
		return nil, err
	}
	var mods Modifiers
	ok := rawMods <= 0xFF
	if ok {
		mods, ok = ModifiersFromCode(uint8(rawMods))
	}
	if !ok {
		return nil, &ParseError{Tag: tag, Field: "modifiers", Value: tokens[1], Err: ErrInvalidModifier}
	}

	rawKey, err := parseNumber(tag, "key_code", tokens[2])
	if err != nil {
		return nil, err
	}
	if rawKey > 0xFFFF {
		return nil, &ParseError{Tag: tag, Field: "key_code", Value: tokens[2], Err: ErrInvalidKeyCode}
	}
	in, err := DecodeInput(uint16(rawKey), mods)
	if err != nil {
		return nil, err
	}

	section, err := parseSection(tag, tokens[4])
	if err != nil {
		return nil, err
	}
	if !isBareToken(tokens[3]) {
		return nil, &ParseError{Tag: tag, Field: "command_id", Value: tokens[3], Err: ErrInvalidCommandID}
	}

	b := KeyBinding{mods: mods, input: in, commandID: tokens[3], section: section}
	if c, ok := ParseComment(comment); ok {
		b = b.WithComment(c)
	}
	return b, nil
}

func parseScript(data string) (Entry, error) {
	const tag = string(TagScript)
	segs := scanSegments(data)
	head := strings.Fields(segs.unquoted(0))
	if len(head) < 2 {
		return nil, missingField(tag, "termination")
	}

	rawTerm, err := parseNumber(tag, "termination", head[1])
	if err != nil {
		return nil, err
	}
	term, ok := TerminationFromCode(uint32(rawTerm))
	if !ok || rawTerm > 0xFFFFFFFF {
		return nil, &ParseError{Tag: tag, Field: "termination", Value: head[1], Err: ErrInvalidTermination}
	}

	if len(head) < 3 {
		return nil, missingField(tag, "section")
	}
	section, err := parseSection(tag, head[2])
	if err != nil {
		return nil, err
	}

	s := ScriptBinding{Termination: term, Section: section}

	// With exactly three bare tokens before the first quote, the command id
	// is the first quoted segment; otherwise it is the fourth bare token.
	next := 0
	if len(head) > 3 {
		s.CommandID = head[3]
	} else {
		id, ok := segs.quoted(next)
		if !ok {
			return nil, missingField(tag, "command_id")
		}
		s.CommandID = id
		next++
	}

	desc, ok := segs.quoted(next)
	if !ok {
		return nil, missingField(tag, "description")
	}
	s.Description = desc
	if len(head) > 4 {
		return nil, &ParseError{Tag: tag, Field: "command_id", Value: strings.Join(head[3:], " "), Err: ErrInvalidCommandID}
	}

	if path, ok := segs.quoted(next + 1); ok {
		s.Path = path
	} else {
		s.Path = strings.TrimSpace(segs.unquoted(next + 1))
	}
	if s.Path == "" {
		return nil, missingField(tag, "path")
	}
	return s, nil
}

func parseAction(data string) (Entry, error) {
	const tag = string(TagAction)
	segs := scanSegments(data)
	head := strings.Fields(segs.unquoted(0))
	if len(head) < 2 {
		return nil, missingField(tag, "flags")
	}

	rawFlags, err := parseNumber(tag, "flags", head[1])
	if err != nil {
		return nil, err
	}

	if len(head) < 3 {
		return nil, missingField(tag, "section")
	}
	section, err := parseSection(tag, head[2])
	if err != nil {
		return nil, err
	}

	id, ok := segs.quoted(0)
	if !ok {
		return nil, missingField(tag, "command_id")
	}
	desc, ok := segs.quoted(1)
	if !ok {
		return nil, missingField(tag, "description")
	}

	ids := strings.Fields(segs.unquoted(2))
	if len(ids) == 0 {
		ids = nil
	}
	return CustomActionBinding{
		Flags:       ActionFlagsFromBits(uint32(rawFlags)),
		Section:     section,
		CommandID:   id,
		Description: desc,
		ActionIDs:   ids,
	}, nil
}

// parseNumber parses a decimal field. Range checks against the field's table
// are left to the caller so out-of-range values get the table's error.
func parseNumber(tag, field, tok string) (uint64, error) {
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, invalidNumber(tag, field, tok, err)
	}
	return n, nil
}

func parseSection(tag, tok string) (Section, error) {
	n, err := parseNumber(tag, "section", tok)
	if err != nil {
		return 0, err
	}
	s, ok := SectionFromCode(uint32(n))
	if !ok || n > 0xFFFFFFFF {
		return 0, &ParseError{Tag: tag, Field: "section", Value: tok, Err: ErrInvalidSection}
	}
	return s, nil
}

// splitComment splits line at the first '#' outside double quotes.
func splitComment(line string) (data, comment string) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case inQuote && c == '\\' && i+1 < len(line):
			i++
		case c == '"':
			inQuote = !inQuote
		case c == '#' && !inQuote:
			return line[:i], line[i:]
		}
	}
	return line, ""
}

// segments alternates unquoted and quoted text: even indexes are unquoted,
// odd indexes are quoted. Without escapes it equals strings.Split(s, `"`).
type segments []string

// scanSegments splits s on double quotes. Inside quotes, \" and \\ are
// unescaped; other backslashes are literal. An unterminated quote runs to
// the end of s.
func scanSegments(s string) segments {
	var (
		out     segments
		cur     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\'):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			out = append(out, cur.String())
			cur.Reset()
			inQuote = !inQuote
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cur.String())
}

// quoted returns the n-th quoted segment.
func (s segments) quoted(n int) (string, bool) {
	i := 2*n + 1
	if i >= len(s) {
		return "", false
	}
	return s[i], true
}

// unquoted returns the n-th unquoted segment, or "" if there is none.
func (s segments) unquoted(n int) string {
	i := 2 * n
	if i >= len(s) {
		return ""
	}
	return s[i]
}

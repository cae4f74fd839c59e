// Package keymap reads and writes REAPER keymap files (.ReaperKeyMap and
// reaper-kb.ini).
//
// A keymap is a sequence of lines, each one of three entry kinds:
//
//	KEY <modifiers> <key> <command> <section> # <comment>
//	SCR <termination> <section> <command> "<description>" <path>
//	ACT <flags> <section> "<command>" "<description>" <action> ...
//
// [ParseLine] turns a line into an [Entry] ([KeyBinding], [ScriptBinding] or
// [CustomActionBinding]) and [FormatLine] turns it back. [Load] and [Save]
// work on whole files; lines that do not parse are reported in a [Report]
// rather than failing the load.
//
// # Modifiers and special inputs
//
// The modifier byte of a KEY line is 1 plus the OR of the [Modifiers] flags,
// except for the value 255, which marks the key code as a [SpecialInput]
// (mouse wheel, multitouch gesture or media key) instead of a [KeyCode].
// [Input] carries either kind, and [KeyBinding] keeps the two in agreement.
//
// Special input codes never fail to decode: codes outside the known table are
// kept as media key or unknown inputs with their raw value, so every code is
// written back exactly as it was read.
//
// # Comments
//
// KEY lines carry a structured comment such as
//
//	# Main : Cmd+Shift+M : OVERRIDE DEFAULT : Track: Toggle mute
//
// which [ParseComment] splits into a [Comment]. Comments are descriptive only.
// When a binding has none, [DeriveComment] builds one from its fields, and
// [FormatLine] always writes a comment for KEY lines.
package keymap

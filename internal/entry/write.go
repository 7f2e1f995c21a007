package entry

import (
	"io"
	"strings"
)

// writer is the thin io.Writer wrapper every Write method takes; it exists
// only so the Entry interface doesn't need to import io directly in its
// method signatures used across package boundaries.
type writer struct {
	io.Writer
}

// NewWriter wraps w for use with Entry.Write.
func NewWriter(w io.Writer) *writer { return &writer{w} }

func writeString(w *writer, s string) { io.WriteString(w, s) }

// writeScalar renders the common "[TypeName ]name = value;" line shared by
// ValueEntry and StringEntry, then right-aligns the description comment.
// Entries declared directly in the config (IsLocal, per the original's
// ConfigEntry::IsLocal) get the leading type name; this rewrite treats
// every ValueEntry/StringEntry as local since linked variables are modeled
// as a distinct kind (LinkedEntry) rather than a flag on the same kind.
func writeScalar(w *writer, e Entry, prefix string, commentOffset int, literal string) {
	if e.Builtin() {
		return
	}
	line := prefix + e.TypeName() + " " + e.Name() + " = " + literal + ";"
	io.WriteString(w, line)
	writeDesc(w, e.Desc(), commentOffset, len(line))
}

// writeBareAssignment renders "name = value;" with no type prefix, used by
// linked entries (which were declared by the host, not by the script).
func writeBareAssignment(w *writer, e Entry, prefix string, commentOffset int, literal string) {
	if e.Builtin() {
		return
	}
	line := prefix + e.Name() + " = " + literal + ";"
	io.WriteString(w, line)
	writeDesc(w, e.Desc(), commentOffset, len(line))
}

// writeDesc right-aligns desc as a "// ..." comment starting near column
// commentOffset, wrapping at existing newlines in desc (matches the
// original's WriteDesc, see ConfigEntry.hpp).
func writeDesc(w *writer, desc string, commentOffset, startPos int) {
	if desc == "" {
		io.WriteString(w, "\n")
		return
	}
	for i, line := range strings.Split(desc, "\n") {
		if i > 0 {
			startPos = 0
		}
		for startPos < commentOffset {
			io.WriteString(w, " ")
			startPos++
		}
		io.WriteString(w, "// "+line+"\n")
	}
}

// toLiteral double-quotes s and escapes control characters, matching the
// source language's string literal syntax (spec.md §6).
func toLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

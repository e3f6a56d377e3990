package bootconfig

import (
	"bytes"
)

// Entry is a single `key value` line of a configuration file.
type Entry struct {
	Key   string
	Value string
}

const whitespace = " \t"

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t'
}

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}

// Next returns the first entry found in buf at or after pos, and the position
// just past the line it was read from. Comment lines, blank lines and lines
// holding only a key are skipped. ok is false once the end of buf (or a NUL
// byte) is reached.
//
// Key and value are copies: buf is never modified and may be parsed again.
func Next(buf []byte, pos int) (entry Entry, next int, ok bool) {
	for pos < len(buf) && buf[pos] != 0 {
		end := pos
		for end < len(buf) && buf[end] != 0 && !isLineEnd(buf[end]) {
			end++
		}
		line := bytes.Trim(buf[pos:end], whitespace)
		pos = end
		if pos < len(buf) && isLineEnd(buf[pos]) {
			pos++
		}

		if len(line) == 0 || line[0] == '#' {
			continue
		}

		sep := bytes.IndexAny(line, whitespace)
		if sep < 0 {
			continue
		}
		value := bytes.TrimLeft(line[sep:], whitespace)
		if len(value) == 0 {
			continue
		}
		return Entry{Key: string(line[:sep]), Value: string(value)}, pos, true
	}
	return Entry{}, pos, false
}

// Parse returns all entries of buf in order.
func Parse(buf []byte) []Entry {
	var entries []Entry
	for pos := 0; ; {
		entry, next, ok := Next(buf, pos)
		if !ok {
			return entries
		}
		entries = append(entries, entry)
		pos = next
	}
}

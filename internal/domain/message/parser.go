// Package message splits the free-form custom_message written by rule
// authors into a fix instruction and a description.
//
// Two conventions are seen in published rules: segments separated by ';'
//
//	[FIX]: Set X to true;[CT.S3.PR.1]: Require X
//
// and one segment per line. Segments are read left to right and a later
// segment overwrites an earlier one for the same field.
package message

import (
	"strings"
)

// Parsed holds the fields found in a message. A field is only meaningful when
// its Has flag is set.
type Parsed struct {
	Fix            string
	HasFix         bool
	Description    string
	HasDescription bool
}

type prefix struct {
	marker string
	// skip is the number of characters dropped from the start of the
	// segment, which includes the separator after the marker.
	skip int
	fix  bool
}

var prefixes = []prefix{
	{marker: "Fix:", skip: 5, fix: true},
	{marker: "[FIX]:", skip: 7, fix: true},
	{marker: "Violation", skip: 11},
}

// Parse reads one custom message.
func Parse(msg string) Parsed {
	var p Parsed
	for _, seg := range segments(msg) {
		p.apply(strings.TrimSpace(seg))
	}
	return p
}

func (p *Parsed) apply(seg string) {
	for _, pre := range prefixes {
		if !strings.HasPrefix(seg, pre.marker) {
			continue
		}
		if pre.fix {
			p.Fix, p.HasFix = dropChars(seg, pre.skip), true
		} else {
			p.Description, p.HasDescription = dropChars(seg, pre.skip), true
		}
		return
	}
	p.Description, p.HasDescription = seg, true
}

func segments(msg string) []string {
	parts := nonBlank(strings.Split(msg, ";"))
	if len(parts) < 2 {
		parts = nonBlank(splitLines(msg))
	}
	return parts
}

func splitLines(msg string) []string {
	return strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

func nonBlank(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// dropChars removes the first n characters of s, counting runes.
func dropChars(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

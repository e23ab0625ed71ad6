package formatter

import (
	"strconv"
	"strings"

	"github.com/emberlog/ember/record"
)

// prefixToken names one recognized %token in a prefix pattern (spec §4.7).
type prefixToken int

const (
	tokLiteral prefixToken = iota
	tokDate
	tokTime
	tokLevel
	tokLogger
	tokThread
)

var tokenNames = map[string]prefixToken{
	"date":   tokDate,
	"time":   tokTime,
	"level":  tokLevel,
	"logger": tokLogger,
	"thread": tokThread,
}

// dateLayout and timeLayout are Go's reference-time spellings of the
// spec's "yyyy-MM-dd" and "HH:mm:ss.fffffff": seven fractional digits, to
// match scenario 1's "2020-01-02 03:04:05.0060000".
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05.0000000"
)

// segment is one piece of a parsed PrefixPattern: either a literal string
// (including any unrecognized "%token" text, emitted verbatim) or a
// recognized token to be evaluated per message.
type segment struct {
	kind    prefixToken
	literal string
}

// PrefixPattern is a prefix pattern parsed once and evaluated per message,
// matching spec §4.7: "Parses a pattern once into a sequence of literal
// chunks and tokens... evaluated per message... returning chars-written."
type PrefixPattern struct {
	segments []segment
}

// ParsePrefixPattern compiles pattern into a PrefixPattern. Recognized
// tokens are case-insensitive and may be spelled bare (%date) or bracketed
// (%{date}); anything else following a '%' is left in the output verbatim,
// including the '%' itself.
func ParsePrefixPattern(pattern string) *PrefixPattern {
	p := &PrefixPattern{}
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{kind: tokLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}

		rest := pattern[i+1:]
		name, width, matched := matchToken(rest)
		if !matched {
			lit.WriteByte('%')
			i++
			continue
		}

		flushLiteral()
		p.segments = append(p.segments, segment{kind: tokenNames[name]})
		i += 1 + width
	}
	flushLiteral()
	return p
}

// matchToken looks for a recognized token name at the start of s, either
// bare ("date ...") or bracketed ("{date} ..."). It returns the matched
// lower-cased name and how many bytes of s the match (including any
// brackets) consumed.
func matchToken(s string) (name string, width int, ok bool) {
	if len(s) > 0 && s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, false
		}
		candidate := strings.ToLower(s[1:end])
		if _, known := tokenNames[candidate]; known {
			return candidate, end + 1, true
		}
		return "", 0, false
	}

	n := 0
	for n < len(s) && isASCIILetter(s[n]) {
		n++
	}
	candidate := strings.ToLower(s[:n])
	for len(candidate) > 0 {
		if _, known := tokenNames[candidate]; known {
			return candidate, len(candidate), true
		}
		candidate = candidate[:len(candidate)-1]
	}
	return "", 0, false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Append evaluates the pattern for rec, appending to dst[:0] the same way
// time.Time.AppendFormat does, and returns the resulting slice and its
// length. Passing a dst with spare capacity avoids an allocation; Append
// grows dst like any other Go append if that capacity isn't enough, rather
// than silently dropping output. Matches spec §4.7's "caller-supplied
// character buffer... returning chars-written".
func (p *PrefixPattern) Append(dst []byte, rec *record.Buffer) (out []byte, n int) {
	out = dst[:0]
	for _, seg := range p.segments {
		switch seg.kind {
		case tokLiteral:
			out = append(out, seg.literal...)
		case tokDate:
			out = rec.Timestamp.AppendFormat(out, dateLayout)
		case tokTime:
			out = rec.Timestamp.AppendFormat(out, timeLayout)
		case tokLevel:
			out = append(out, rec.Level.String()...)
		case tokLogger:
			out = append(out, rec.Logger...)
		case tokThread:
			out = appendThread(out, rec)
		}
	}
	return out, len(out)
}

func appendThread(dst []byte, rec *record.Buffer) []byte {
	if rec.ThreadName != "" {
		return append(dst, rec.ThreadName...)
	}
	if rec.ThreadID != 0 {
		return strconv.AppendUint(dst, rec.ThreadID, 10)
	}
	return append(dst, '0')
}

// WriteString renders the pattern for rec as a string. Formatters use this
// directly; Append exists separately for callers that want to reuse a
// fixed byte buffer across calls.
func (p *PrefixPattern) WriteString(rec *record.Buffer) string {
	buf := make([]byte, 0, 64)
	buf, _ = p.Append(buf, rec)
	return string(buf)
}

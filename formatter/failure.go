package formatter

import (
	"bytes"

	"github.com/emberlog/ember/record"
)

// FailureMessage renders the literal fallback text spec §7 mandates for
// FormatterFailure: the normal formatted render is abandoned in favor of a
// fixed-shape diagnostic line plus a best-effort unformatted dump of the
// record's own argument stream, decoded through the same Decode path every
// other mode uses (so this cannot itself recurse into a user Formatter that
// just failed).
func FailureMessage(buf *record.Buffer, cause error) string {
	var dump bytes.Buffer
	record.Decode(buf, record.Unformatted, &dump, nil, record.DecodeOptions{})

	var out bytes.Buffer
	out.WriteString("An error occurred during formatting: ")
	out.WriteString(cause.Error())
	out.WriteString(" - Unformatted message: ")
	if buf.Message != "" {
		out.WriteString(buf.Message)
		if dump.Len() > 0 {
			out.WriteString(" ")
		}
	}
	out.Write(dump.Bytes())
	out.WriteByte('\n')
	return out.String()
}

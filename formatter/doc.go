// Package formatter renders a decoded record.Buffer to text: the prefix
// pattern (%date %time %level %logger %thread) followed by the argument
// stream, in one of three modes (formatted, unformatted, key/value).
//
// Formatters never run on the producer side; the worker is their only
// caller, so unlike the teacher's formatter package (shared by sync and
// async handlers alike) there is exactly one goroutine formatting at a
// time and no need to guard against concurrent Format calls.
package formatter

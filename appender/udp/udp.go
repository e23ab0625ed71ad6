// Package udp sends one structured-log XML datagram per record over UDP
// (spec §6: "appenders may define their own [wire format], e.g. one
// structured-log XML dialect for UDP"). There is no teacher analogue —
// NLog ships no network appender — so this package follows the same
// Config/New/Name/Write/Flush/Close/SetEncoding shape appender/console and
// appender/file establish, the pattern this module uses for every concrete
// appender.
package udp

import (
	"encoding/xml"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/emberlog/ember/record"
)

// DefaultMaxPacketSize keeps a single datagram under the common
// 1500-byte Ethernet MTU once IP/UDP headers are accounted for.
const DefaultMaxPacketSize = 1400

// logEvent is the XML dialect this appender emits: one <log> element per
// record, attributes for the structured fields a receiver needs to filter
// on without parsing the message body.
type logEvent struct {
	XMLName xml.Name `xml:"log"`
	Level   string   `xml:"level,attr"`
	Logger  string   `xml:"logger,attr"`
	Time    string   `xml:"time,attr"`
	Message string   `xml:",chardata"`
}

// Config configures an Appender.
type Config struct {
	// Addr is the destination in host:port form.
	Addr string
	// MaxPacketSize bounds the outgoing datagram; messages are truncated
	// rather than fragmented, since UDP fragmentation defeats the point of
	// a fire-and-forget transport. 0 uses DefaultMaxPacketSize.
	MaxPacketSize int
	// Name defaults to "udp".
	Name string
}

// Appender writes each record as one UDP datagram.
type Appender struct {
	name string

	mu            sync.Mutex
	conn          net.Conn
	maxPacketSize int
	encoding      string
}

// New dials cfg.Addr and returns an Appender sending to it. UDP is
// connectionless; Dial here only binds the local socket's default
// destination, so Write never blocks on a peer that isn't listening.
func New(cfg Config) (*Appender, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("ember: udp appender requires an address")
	}
	if cfg.Name == "" {
		cfg.Name = "udp"
	}
	if cfg.MaxPacketSize <= 0 {
		cfg.MaxPacketSize = DefaultMaxPacketSize
	}

	conn, err := net.Dial("udp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	return &Appender{name: cfg.Name, conn: conn, maxPacketSize: cfg.MaxPacketSize}, nil
}

// Name implements appender.Named.
func (a *Appender) Name() string { return a.name }

// Write marshals buf into the XML dialect and sends it as one datagram.
// formatted is used verbatim as the message body, so whatever Formatter is
// configured upstream (text, JSON) still determines how arguments render;
// this appender only adds the envelope.
func (a *Appender) Write(buf *record.Buffer, formatted []byte) error {
	ev := logEvent{
		Level:   buf.Level.String(),
		Logger:  buf.Logger,
		Time:    buf.Timestamp.UTC().Format(time.RFC3339Nano),
		Message: string(formatted),
	}
	data, err := xml.Marshal(ev)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(data) > a.maxPacketSize {
		data = data[:a.maxPacketSize]
	}
	_, err = a.conn.Write(data)
	return err
}

// Flush is a no-op: UDP has no buffering to flush.
func (a *Appender) Flush() error { return nil }

// SetEncoding records the output encoding name for diagnostics; the XML
// dialect is always UTF-8.
func (a *Appender) SetEncoding(enc string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.encoding = enc
	return nil
}

// Close closes the underlying socket.
func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn.Close()
}

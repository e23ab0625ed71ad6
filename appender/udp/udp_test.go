package udp

import (
	"encoding/xml"
	"net"
	"testing"
	"time"

	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

func TestAppender_WriteSendsXMLDatagram(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer pc.Close()

	a, err := New(Config{Addr: pc.LocalAddr().String()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	buf := record.NewBuffer(32, 4)
	buf.Level = core.Info
	buf.Logger = "app"
	buf.Timestamp = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := a.Write(buf, []byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	_ = pc.SetReadDeadline(time.Now().Add(time.Second))
	packet := make([]byte, 2048)
	n, _, err := pc.ReadFrom(packet)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}

	var ev logEvent
	if err := xml.Unmarshal(packet[:n], &ev); err != nil {
		t.Fatalf("Unmarshal() error = %v, data = %q", err, packet[:n])
	}
	if ev.Logger != "app" {
		t.Errorf("Logger = %q, want %q", ev.Logger, "app")
	}
	if ev.Message != "hello" {
		t.Errorf("Message = %q, want %q", ev.Message, "hello")
	}
}

func TestAppender_WriteTruncatesOversizedDatagram(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() error = %v", err)
	}
	defer pc.Close()

	a, err := New(Config{Addr: pc.LocalAddr().String(), MaxPacketSize: 64})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	buf := record.NewBuffer(32, 4)
	huge := make([]byte, 4096)
	for i := range huge {
		huge[i] = 'x'
	}
	if err := a.Write(buf, huge); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	_ = pc.SetReadDeadline(time.Now().Add(time.Second))
	packet := make([]byte, 8192)
	n, _, err := pc.ReadFrom(packet)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if n > 64 {
		t.Errorf("datagram size = %d, want <= 64", n)
	}
}

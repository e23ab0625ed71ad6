package appender

import (
	"errors"
	"testing"
	"time"

	"github.com/emberlog/ember/record"
)

type fakeAppender struct {
	writes  int
	flushes int
	closes  int
	failNext bool
	err     error
}

func (f *fakeAppender) Write(buf *record.Buffer, formatted []byte) error {
	f.writes++
	if f.failNext {
		f.failNext = false
		return f.err
	}
	return nil
}

func (f *fakeAppender) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeAppender) Close() error {
	f.closes++
	return nil
}

func (f *fakeAppender) SetEncoding(enc string) error {
	return nil
}

func TestGuardedSkipsDuringQuarantine(t *testing.T) {
	inner := &fakeAppender{failNext: true, err: errors.New("disk full")}
	var quarantined string
	g := NewGuarded("test-sink", inner, 50*time.Millisecond, func(name string, err error) {
		quarantined = name
	})

	buf := record.NewBuffer(16, 2)

	if err := g.Write(buf, nil); err == nil {
		t.Fatal("Write() error = nil, want failure to open quarantine")
	}
	if quarantined != "test-sink" {
		t.Errorf("onQuarantine name = %q, want test-sink", quarantined)
	}
	if !g.Quarantined() {
		t.Fatal("Quarantined() = false, want true immediately after failure")
	}

	if err := g.Write(buf, nil); err != nil {
		t.Errorf("Write() during quarantine error = %v, want nil (skip)", err)
	}
	if inner.writes != 1 {
		t.Errorf("inner.writes = %d, want 1 (second write should be skipped)", inner.writes)
	}

	time.Sleep(60 * time.Millisecond)
	if g.Quarantined() {
		t.Fatal("Quarantined() = true after cooldown elapsed")
	}
	if err := g.Write(buf, nil); err != nil {
		t.Errorf("Write() after cooldown error = %v, want nil", err)
	}
	if inner.writes != 2 {
		t.Errorf("inner.writes = %d, want 2", inner.writes)
	}

	snap := g.Stats()
	if snap.Failures != 1 || snap.Skipped != 1 || snap.Written != 1 {
		t.Errorf("stats = %+v, want Failures=1 Skipped=1 Written=1", snap)
	}
}

func TestMultiAggregatesErrors(t *testing.T) {
	a := &fakeAppender{failNext: true, err: errors.New("a failed")}
	b := &fakeAppender{failNext: true, err: errors.New("b failed")}
	c := &fakeAppender{}

	m := NewMulti(a, b, c)
	buf := record.NewBuffer(16, 2)

	err := m.Write(buf, nil)
	if err == nil {
		t.Fatal("Write() error = nil, want aggregated failure")
	}
	if !containsMsg(err.Error(), "a failed") || !containsMsg(err.Error(), "b failed") {
		t.Errorf("Write() error = %v, want both sink errors present", err)
	}
	if c.writes != 1 {
		t.Errorf("c.writes = %d, want 1 (third sink must still be written)", c.writes)
	}
}

func containsMsg(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}

package resolver

import (
	"testing"

	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/config"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/record"
)

type recordingAppender struct {
	name   string
	writes int
}

func (a *recordingAppender) Write(buf *record.Buffer, formatted []byte) error {
	a.writes++
	return nil
}
func (a *recordingAppender) Flush() error                   { return nil }
func (a *recordingAppender) Close() error                   { return nil }
func (a *recordingAppender) SetEncoding(enc string) error   { return nil }
func (a *recordingAppender) Name() string                   { return a.name }

func newTestConfig() (config.Config, *recordingAppender, *recordingAppender) {
	console := &recordingAppender{name: "console"}
	file := &recordingAppender{name: "file"}

	cfg := config.DefaultConfig()
	cfg.Appenders = map[string]appender.Appender{
		"console": console,
		"file":    file,
	}
	cfg.Root.Appenders = []config.AppenderRef{{Name: "console"}}
	cfg.Loggers = []config.LoggerConfig{
		{Name: "app", Level: core.Debug, Appenders: []config.AppenderRef{{Name: "file"}}},
		{Name: "app.noisy", Level: core.Warn},
	}
	return cfg, console, file
}

func TestResolve_LongestPrefixLevel(t *testing.T) {
	cfg, _, _ := newTestConfig()
	r := New()
	if err := r.Build(cfg); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	cases := []struct {
		name string
		want core.Level
	}{
		{"", core.Info},
		{"unrelated.pkg", core.Info},
		{"app", core.Debug},
		{"app.widgets", core.Debug},
		{"app.noisy", core.Warn},
		{"app.noisy.child", core.Warn},
	}
	for _, c := range cases {
		got := r.Resolve(c.name).Level
		if got != c.want {
			t.Errorf("Resolve(%q).Level = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestResolve_IncludeParentAppendersTrue(t *testing.T) {
	cfg, console, file := newTestConfig()
	r := New()
	if err := r.Build(cfg); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	res := r.Resolve("app.widgets")
	buf := record.NewBuffer(32, 4)
	_ = res.Appenders.Write(buf, nil)

	if console.writes != 1 {
		t.Errorf("console.writes = %d, want 1 (root appender should be included by default)", console.writes)
	}
	if file.writes != 1 {
		t.Errorf("file.writes = %d, want 1 (app's own appender)", file.writes)
	}
}

func TestResolve_IncludeParentAppendersFalse(t *testing.T) {
	cfg, console, file := newTestConfig()
	no := false
	cfg.Loggers = append(cfg.Loggers, config.LoggerConfig{
		Name:                   "isolated",
		Level:                  core.Info,
		Appenders:              []config.AppenderRef{{Name: "file"}},
		IncludeParentAppenders: &no,
	})

	r := New()
	if err := r.Build(cfg); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	res := r.Resolve("isolated")
	buf := record.NewBuffer(32, 4)
	_ = res.Appenders.Write(buf, nil)

	if console.writes != 0 {
		t.Errorf("console.writes = %d, want 0 (parent appenders excluded)", console.writes)
	}
	if file.writes != 1 {
		t.Errorf("file.writes = %d, want 1", file.writes)
	}
}

func TestBuild_UnknownAppenderReference(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Loggers = []config.LoggerConfig{
		{Name: "app", Appenders: []config.AppenderRef{{Name: "missing"}}},
	}

	r := New()
	err := r.Build(cfg)
	if err == nil {
		t.Fatal("Build() error = nil, want validation failure for unknown appender")
	}
}

func TestSubscribe_NotifiedOnRebuild(t *testing.T) {
	cfg, _, _ := newTestConfig()
	r := New()
	if err := r.Build(cfg); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	called := 0
	r.Subscribe(func() { called++ })

	if err := r.Build(cfg); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if called != 1 {
		t.Errorf("subscriber called %d times, want 1", called)
	}
}

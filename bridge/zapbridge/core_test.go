package zapbridge

import (
	"bytes"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberlog/ember/appender/console"
	"github.com/emberlog/ember/config"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/logger"
)

func waitFor(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCore_WriteRoutesThroughLogger(t *testing.T) {
	var out bytes.Buffer
	c := console.New(console.Config{Writer: &out})

	cfg := config.DefaultConfig()
	cfg.Appenders["console"] = c
	cfg.Root.Appenders = []config.AppenderRef{{Name: "console"}}
	cfg.Root.Level = core.Info

	if err := logger.Initialize(cfg); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer logger.Shutdown()

	zc := New(logger.GetLogger("app"))
	zl := zap.New(zc)
	zl.Info("hello", zap.String("user", "bob"), zap.Int64("count", 3))

	waitFor(t, func() bool { return out.Len() > 0 })
}

func TestCore_EnabledRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	c := console.New(console.Config{Writer: &out})

	cfg := config.DefaultConfig()
	cfg.Appenders["console"] = c
	cfg.Root.Appenders = []config.AppenderRef{{Name: "console"}}
	cfg.Root.Level = core.Warn

	if err := logger.Initialize(cfg); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer logger.Shutdown()

	zc := New(logger.GetLogger("app"))
	if zc.Enabled(zapcore.DebugLevel) {
		t.Error("Enabled(Debug) = true, want false under Root.Level=Warn")
	}
	if !zc.Enabled(zapcore.ErrorLevel) {
		t.Error("Enabled(Error) = false, want true under Root.Level=Warn")
	}
}

func TestCore_WithCarriesFields(t *testing.T) {
	zc := New(logger.GetLogger("app"))
	zc2 := zc.With([]zapcore.Field{zap.String("service", "api")}).(*Core)
	if len(zc2.fields) != 1 {
		t.Fatalf("len(fields) = %d, want 1", len(zc2.fields))
	}
}

package benchmark

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/appender/console"
	"github.com/emberlog/ember/appender/file"
	"github.com/emberlog/ember/config"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/formatter"
	"github.com/emberlog/ember/logger"
)

// discardWriter is a no-op writer for benchmarking.
type discardWriter struct{}

func (w discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// setup builds a fresh pipeline with a single appender and returns a
// logger for it. b.Cleanup tears the pipeline down after the benchmark so
// each one starts with its own pool/queue/worker, matching the teacher's
// per-benchmark handler construction.
func setup(b *testing.B, level core.Level, a appender.Appender) *logger.Logger {
	b.Helper()
	cfg := config.DefaultConfig()
	cfg.Appenders["bench"] = a
	cfg.Root.Appenders = []config.AppenderRef{{Name: "bench"}}
	cfg.Root.Level = level

	if err := logger.Initialize(cfg); err != nil {
		b.Fatalf("Initialize() error = %v", err)
	}
	b.Cleanup(logger.Shutdown)
	return logger.GetLogger("bench")
}

// BenchmarkInfoNoFields measures the bare enqueue path: acquire, stamp
// message and timestamp, enqueue.
func BenchmarkInfoNoFields(b *testing.B) {
	l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().Log("test message")
	}
}

// BenchmarkInfo1Field measures one typed argument appended before Log.
func BenchmarkInfo1Field(b *testing.B) {
	l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().Key("key").String("value").Log("test message")
	}
}

// BenchmarkInfo5Fields measures a representative mixed-type argument set.
func BenchmarkInfo5Fields(b *testing.B) {
	l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().
			Key("key1").String("value1").
			Key("key2").I32(42).
			Key("key3").F64(3.14).
			Key("key4").Bool(true).
			Key("key5").String("value5").
			Log("test message")
	}
}

// BenchmarkInfo10Fields doubles BenchmarkInfo5Fields's argument count.
func BenchmarkInfo10Fields(b *testing.B) {
	l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().
			Key("key1").String("value1").
			Key("key2").I32(42).
			Key("key3").F64(3.14).
			Key("key4").Bool(true).
			Key("key5").String("value5").
			Key("key6").I64(1234567890).
			Key("key7").TimeSpan(time.Second).
			Key("key8").DateTime(time.Now()).
			Key("key9").String("value9").
			Key("key10").String("value10").
			Log("test message")
	}
}

// BenchmarkDisabledLevel exercises the early-exit path: BeginRecord must
// not touch the pool once IsEnabled is false.
func BenchmarkDisabledLevel(b *testing.B) {
	l := setup(b, core.Error, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Debug().Key("key").String("value").Log("debug message")
	}
}

// BenchmarkArgumentTypes measures one appended argument per type, to spot
// any type whose encode path is disproportionately expensive.
func BenchmarkArgumentTypes(b *testing.B) {
	tests := []struct {
		name string
		fn   func(l *logger.Logger)
	}{
		{"String", func(l *logger.Logger) { l.Info().String("value").Log("msg") }},
		{"I32", func(l *logger.Logger) { l.Info().I32(42).Log("msg") }},
		{"I64", func(l *logger.Logger) { l.Info().I64(1234567890).Log("msg") }},
		{"F64", func(l *logger.Logger) { l.Info().F64(3.14159265).Log("msg") }},
		{"Bool", func(l *logger.Logger) { l.Info().Bool(true).Log("msg") }},
		{"DateTime", func(l *logger.Logger) { l.Info().DateTime(time.Now()).Log("msg") }},
		{"TimeSpan", func(l *logger.Logger) { l.Info().TimeSpan(time.Second).Log("msg") }},
		{"Err", func(l *logger.Logger) { l.Info().Err(errors.New("test error")).Log("msg") }},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				tt.fn(l)
			}
		})
	}
}

// BenchmarkFormatters compares the text and JSON formatters against the
// same five-argument record.
func BenchmarkFormatters(b *testing.B) {
	tests := []struct {
		name string
		f    formatter.Formatter
	}{
		{"Text", formatter.NewTextFormatter(formatter.Config{})},
		{"JSON", formatter.NewJSONFormatter(formatter.Config{})},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			cfg := config.DefaultConfig()
			cfg.Formatter = tt.f
			cfg.Appenders["bench"] = console.New(console.Config{Writer: discardWriter{}})
			cfg.Root.Appenders = []config.AppenderRef{{Name: "bench"}}
			cfg.Root.Level = core.Info
			if err := logger.Initialize(cfg); err != nil {
				b.Fatalf("Initialize() error = %v", err)
			}
			b.Cleanup(logger.Shutdown)
			l := logger.GetLogger("bench")

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info().
					Key("key1").String("value1").
					Key("key2").I32(42).
					Key("key3").F64(3.14).
					Log("test message")
			}
		})
	}
}

// BenchmarkPipelineOverhead isolates the pool/queue/worker cost from
// downstream I/O by comparing a console sink against a noop sink.
func BenchmarkPipelineOverhead(b *testing.B) {
	tests := []struct {
		name string
		a    appender.Appender
	}{
		{"Console", console.New(console.Config{Writer: discardWriter{}})},
		{"Noop", newNoopAppender()},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			l := setup(b, core.Info, tt.a)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info().String("value").Log("test message")
			}
		})
	}
}

// BenchmarkConcurrentLogging drives the single-worker pipeline from
// several producer goroutines at once.
func BenchmarkConcurrentLogging(b *testing.B) {
	l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Info().
				Key("key1").String("value1").
				Key("key2").I32(42).
				Log("test message")
		}
	})
}

// BenchmarkFileAppender exercises the rotating file appender with real
// disk I/O.
func BenchmarkFileAppender(b *testing.B) {
	tmp, err := os.CreateTemp(b.TempDir(), "ember_benchmark_*.log")
	if err != nil {
		b.Fatal(err)
	}
	tmp.Close()

	a, err := file.New(file.Config{Filename: tmp.Name()})
	if err != nil {
		b.Fatal(err)
	}
	l := setup(b, core.Info, a)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().
			Key("key1").String("value1").
			Key("key2").I32(int32(i)).
			Log("test message")
	}
}

// BenchmarkMultiAppender fans every record out to a growing number of
// console sinks.
func BenchmarkMultiAppender(b *testing.B) {
	counts := []int{2, 3, 5, 10}

	for _, n := range counts {
		b.Run(fmt.Sprintf("%dAppenders", n), func(b *testing.B) {
			appenders := make([]appender.Appender, n)
			for i := range appenders {
				appenders[i] = console.New(console.Config{Writer: discardWriter{}})
			}
			l := setup(b, core.Info, appender.NewMulti(appenders...))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info().String("value").Log("test message")
			}
		})
	}
}

// BenchmarkRealisticScenario simulates a web request log line with the
// field mix a production service would actually emit.
func BenchmarkRealisticScenario(b *testing.B) {
	cfg := config.DefaultConfig()
	cfg.Appenders["bench"] = console.New(console.Config{
		Writer: discardWriter{},
	})
	cfg.Root.Appenders = []config.AppenderRef{{Name: "bench"}}
	cfg.Root.Level = core.Info
	if err := logger.Initialize(cfg); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(logger.Shutdown)
	l := logger.GetLogger("api-gateway")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info().
			Key("request_id").String("req-12345").
			Key("method").String("GET").
			Key("path").String("/api/users").
			Key("user_id").I32(42).
			Key("latency").TimeSpan(150 * time.Millisecond).
			Key("status").I32(200).
			Log("request handled")
	}
}

// BenchmarkLargeMessages sweeps message sizes to check the formatter's and
// appender's cost scales linearly, not superlinearly, with payload size.
func BenchmarkLargeMessages(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"Small_50B", 50},
		{"Medium_500B", 500},
		{"Large_5KB", 5000},
		{"VeryLarge_50KB", 50000},
	}

	for _, sz := range sizes {
		b.Run(sz.name, func(b *testing.B) {
			l := setup(b, core.Info, console.New(console.Config{Writer: discardWriter{}}))
			message := string(make([]byte, sz.size))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info().Log(message)
			}
		})
	}
}

package logger

import (
	"sync"
	"time"

	"github.com/emberlog/ember/config"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/formatter"
	"github.com/emberlog/ember/pool"
	"github.com/emberlog/ember/queue"
	"github.com/emberlog/ember/record"
	"github.com/emberlog/ember/resolver"
	"github.com/emberlog/ember/worker"
)

const defaultDrainTimeout = 2 * time.Second

// manager owns the pipeline a Logger draws on: pool, queue, resolver, and
// the one background worker. There is one manager per Initialize call;
// package-level functions operate on the current global one.
type manager struct {
	pool     *pool.Pool
	queue    *queue.Queue
	resolver *resolver.Resolver
	worker   *worker.Worker

	mu      sync.RWMutex
	loggers map[string]*Logger
}

var (
	globalMu sync.RWMutex
	global   *manager
)

// Initialize builds the logging pipeline from cfg and starts the worker
// goroutine. Calling it again replaces the previous pipeline; callers
// should Shutdown the old one first if they want its appenders flushed and
// closed before the swap.
func Initialize(cfg config.Config) error {
	core.StartCoarseClock()

	r := resolver.New()
	if err := r.Build(cfg); err != nil {
		return err
	}

	q := queue.New(cfg.LogMessagePoolSize)
	p := pool.New(cfg.LogMessagePoolSize, cfg.LogMessageBufferSize, cfg.LogMessageStringCapacity, pool.DropAndNotify, func(err error) {
		notifyExhausted(q, err)
	})

	f := cfg.Formatter
	if f == nil {
		f = formatter.NewTextFormatter(formatter.Config{
			Mode:                   record.Formatted,
			NullDisplayString:      cfg.NullDisplayString,
			TruncatedMessageSuffix: cfg.TruncatedMessageSuffix,
		})
	}

	w := worker.New(q, p, r, f, defaultDrainTimeout)

	m := &manager{
		pool:     p,
		queue:    q,
		resolver: r,
		loggers:  map[string]*Logger{},
		worker:   w,
	}
	r.Subscribe(func() { m.refreshAll() })

	globalMu.Lock()
	global = m
	globalMu.Unlock()
	defaultLogger.Store(nil)

	go w.Run()
	return nil
}

// notifyExhausted emits a constant-message record describing a pool
// exhaustion event, bypassing the pool entirely (record.NewConstantMessage
// is never released), so the notification itself can never contend for the
// very resource it is reporting as exhausted.
func notifyExhausted(q *queue.Queue, err error) {
	buf := record.NewConstantMessage(core.Warn, "ember", "message buffer pool exhausted: "+err.Error())
	_ = q.Enqueue(buf)
}

// Shutdown stops the current worker (draining the queue, then flushing and
// closing every appender) and releases the global pipeline. Safe to call
// when no pipeline is initialized.
func Shutdown() {
	globalMu.Lock()
	m := global
	global = nil
	globalMu.Unlock()
	defaultLogger.Store(nil)

	if m == nil {
		return
	}
	m.pool.Shutdown()
	m.worker.Stop()
}

// GetLogger returns the handle for name, creating and caching it on first
// use. Concurrent calls for the same name may race to create the handle;
// only one wins and is cached, the others' handles are discarded.
func GetLogger(name string) *Logger {
	globalMu.RLock()
	m := global
	globalMu.RUnlock()
	if m == nil {
		return noopLogger(name)
	}
	return m.getLogger(name)
}

func (m *manager) getLogger(name string) *Logger {
	m.mu.RLock()
	if l, ok := m.loggers[name]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	l := &Logger{name: name, m: m}
	l.refreshLevel()

	m.mu.Lock()
	if existing, ok := m.loggers[name]; ok {
		m.mu.Unlock()
		return existing
	}
	m.loggers[name] = l
	m.mu.Unlock()
	return l
}

func (m *manager) refreshAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.loggers {
		l.refreshLevel()
	}
}

// noopLogger is returned by GetLogger before Initialize has run, so callers
// that obtain a handle early don't need a nil check; every method is a
// harmless no-op until a real pipeline exists.
func noopLogger(name string) *Logger {
	l := &Logger{name: name}
	l.level.Store(int32(core.None))
	return l
}

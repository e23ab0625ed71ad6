package resolver

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/config"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/pool"
)

// Resolution is the effective configuration spec §4.6 returns from a
// lookup: the level, the combined appender set as a single fan-out
// appender, and the pool-exhaustion strategy to apply when this logger's
// records can't get a buffer.
type Resolution struct {
	Level     core.Level
	Appenders appender.Appender
	Strategy  pool.ExhaustionStrategy
}

// tree is one built trie plus the flat set of Guarded wrappers it created,
// so closing a superseded tree doesn't need to walk it.
type tree struct {
	root    *node
	guarded map[string]*appender.Guarded
}

// Resolver holds the current trie behind an atomic pointer so lookups
// never block a concurrent rebuild, and rebuilds never block lookups in
// flight (spec §4.6: "build a new tree; atomically swap the root pointer;
// call close on all appenders reachable from the old root after the
// swap").
type Resolver struct {
	current atomic.Pointer[tree]

	mu             sync.Mutex // serializes Build/swap against itself
	subs           []func()
	quarantineHook func(appenderName string, err error)
}

// New returns a Resolver with no tree loaded; call Build before Resolve.
func New() *Resolver {
	return &Resolver{}
}

// Build validates cfg, constructs a fresh trie, and swaps it in. On the
// very first call there is no old tree to close. OnQuarantine, if set via
// SetQuarantineHook before the first Build, is passed to every
// appender.Guarded this call creates.
func (r *Resolver) Build(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := buildTree(cfg, r.quarantineHook)
	if err != nil {
		return err
	}

	old := r.current.Swap(t)
	if old != nil {
		closeTree(old)
	}

	for _, sub := range r.subs {
		if sub != nil {
			sub()
		}
	}
	return nil
}

// SetQuarantineHook installs the callback passed to every appender.Guarded
// built by subsequent Build calls (e.g. to log a quarantine notice via the
// worker's constant-message path).
func (r *Resolver) SetQuarantineHook(fn func(appenderName string, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quarantineHook = fn
}

// Subscribe registers fn to be called after every successful Build
// (spec §4.6: "Publish the 'updated' event so logger handles refresh
// their cached level"). It returns an unsubscribe function.
func (r *Resolver) Subscribe(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
	idx := len(r.subs) - 1
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.subs[idx] = nil
	}
}

// Resolve splits name on '.' and descends the trie while children match,
// returning the last visited node's effective configuration — the root's
// defaults if name matches no configured prefix (spec §4.6).
func (r *Resolver) Resolve(name string) Resolution {
	t := r.current.Load()
	if t == nil {
		return Resolution{Level: core.Info, Appenders: appender.NewMulti(), Strategy: pool.DropAndNotify}
	}

	cur := t.root
	if name != "" {
		for _, part := range strings.Split(name, ".") {
			child, ok := cur.children[part]
			if !ok {
				break
			}
			cur = child
		}
	}
	return Resolution{Level: cur.level, Appenders: cur.multi, Strategy: cur.strategy}
}

// FlushAll flushes every appender reachable from the current tree, in the
// deduplicated set the resolver tracks internally (so a shared appender
// referenced by several loggers is flushed once, not once per logger).
func (r *Resolver) FlushAll() error {
	t := r.current.Load()
	if t == nil {
		return nil
	}
	var err error
	for _, g := range t.guarded {
		err = multierr.Append(err, g.Flush())
	}
	return err
}

// CloseAll closes every appender reachable from the current tree. Called
// once, at worker shutdown (spec §4.4: "on shutdown, flush then close every
// appender").
func (r *Resolver) CloseAll() error {
	t := r.current.Load()
	if t == nil {
		return nil
	}
	return closeTree(t)
}

func buildTree(cfg config.Config, quarantineHook func(string, error)) (*tree, error) {
	if quarantineHook == nil {
		quarantineHook = func(string, error) {}
	}
	guarded := map[string]*appender.Guarded{}
	guardedFor := func(name string) *appender.Guarded {
		if g, ok := guarded[name]; ok {
			return g
		}
		g := appender.NewGuarded(name, cfg.Appenders[name], cfg.AppenderQuarantineDelay, quarantineHook)
		guarded[name] = g
		return g
	}
	wrap := func(ref config.AppenderRef) namedAppender {
		var a appender.Appender = guardedFor(ref.Name)
		if ref.Level > core.Trace {
			a = &levelFloor{floor: ref.Level, next: a}
		}
		return namedAppender{name: ref.Name, a: a}
	}

	rootDefined := make([]namedAppender, 0, len(cfg.Root.Appenders))
	for _, ref := range cfg.Root.Appenders {
		rootDefined = append(rootDefined, wrap(ref))
	}
	root := newNode(cfg.Root.Level, rootDefined, cfg.Root.ExhaustionStrategy)

	defs := make([]config.LoggerConfig, 0, len(cfg.Loggers))
	for _, lc := range cfg.Loggers {
		if lc.Name != "" {
			defs = append(defs, lc)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	for _, lc := range defs {
		parts := strings.Split(lc.Name, ".")
		cur := root
		for _, part := range parts {
			child, ok := cur.children[part]
			if !ok {
				child = newNode(cur.level, cur.refs, cur.strategy)
				cur.children[part] = child
			}
			cur = child
		}

		defined := make([]namedAppender, 0, len(lc.Appenders))
		for _, ref := range lc.Appenders {
			defined = append(defined, wrap(ref))
		}
		merged := mergeAppenders(defined, cur.refs, lc.includeParents())

		cur.level = lc.Level
		cur.strategy = lc.ExhaustionStrategy
		cur.setRefs(merged)
	}

	return &tree{root: root, guarded: guarded}, nil
}

func closeTree(t *tree) error {
	var err error
	for _, g := range t.guarded {
		err = multierr.Append(err, g.Close())
	}
	return err
}

package resolver

import (
	"github.com/emberlog/ember/appender"
	"github.com/emberlog/ember/core"
	"github.com/emberlog/ember/pool"
)

// namedAppender pairs a wrapped appender with the config name it was
// registered under, so child nodes can dedup against inherited parent
// appenders by name (spec §4.6: "appender-set to defined_appenders ∪
// parent_appenders").
type namedAppender struct {
	name string
	a    appender.Appender
}

// node is one trie node. Every node, including freshly created
// intermediates, carries a complete, valid (level, refs, strategy) triple
// — there is no "unset" state (spec §4.6: "each newly created intermediate
// node inherits the current... from its parent").
type node struct {
	level    core.Level
	refs     []namedAppender
	multi    *appender.Multi
	strategy pool.ExhaustionStrategy
	children map[string]*node
}

func newNode(level core.Level, refs []namedAppender, strategy pool.ExhaustionStrategy) *node {
	n := &node{level: level, strategy: strategy, children: map[string]*node{}}
	n.setRefs(refs)
	return n
}

func (n *node) setRefs(refs []namedAppender) {
	n.refs = refs
	plain := make([]appender.Appender, len(refs))
	for i, r := range refs {
		plain[i] = r.a
	}
	n.multi = appender.NewMulti(plain...)
}

// mergeAppenders implements spec §4.6's appender-set rule: defined
// appenders first (in configured order), then any parent appenders not
// already named, when includeParents is true; otherwise just defined.
func mergeAppenders(defined []namedAppender, parent []namedAppender, includeParents bool) []namedAppender {
	out := make([]namedAppender, 0, len(defined)+len(parent))
	seen := make(map[string]bool, len(defined))
	for _, d := range defined {
		out = append(out, d)
		seen[d.name] = true
	}
	if includeParents {
		for _, p := range parent {
			if !seen[p.name] {
				out = append(out, p)
				seen[p.name] = true
			}
		}
	}
	return out
}


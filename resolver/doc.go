// Package resolver implements the hierarchical logger configuration
// described in spec §4.6: a trie over dot-separated logger names where
// each node carries an inherited effective (level, appender set,
// pool-exhaustion strategy), looked up by longest matching prefix.
//
// This component has no direct analogue in the teacher (NLog has no
// hierarchical logger configuration); it is new code written in the
// teacher's idiom, additionally grounded on handler/multi.go's
// fan-out-and-aggregate-errors style for closing every appender reachable
// from a superseded tree.
package resolver

// Package eval evaluates a parsed lang.File into a tree.Node object tree
// (§4.3). Evaluation is a pure tree-rewrite: expressions fold to
// value.Value, module instantiations resolve against an explicitly
// constructed Registry (no package-level init() registration), and
// control modules receive their children as a closure rather than a raw
// unevaluated instantiation list.
package eval

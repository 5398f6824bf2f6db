// Package model defines the typed form model shared by every formflow
// consumer: the paginated classic renderer, the canvas builder, and the
// conversational runner. Fields carry optional conditional-logic rule sets
// and progressive-profiling settings; both are plain data and are interpreted
// by pkg/condition, pkg/visibility and pkg/profiling. All types here are
// value objects supplied by the caller per invocation — the engine holds no
// state between calls and never mutates caller-owned maps or slices.
package model

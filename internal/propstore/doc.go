// Package propstore persists item layout properties and serves them through the
// layout.Store port.
//
// Memory is a process-local map used by tests and tooling that needs a
// scriptable fake host. SQLite keeps items and their properties in a database
// so the CLI and the property server share state across runs. Keys prefixed
// with "prop:" belong to one item; any other key (for example
// "mixerresolution") is an application-level property shared by every item.
//
// Both stores emulate one piece of host behaviour: "prop:posaspect" is never
// written by clients, so reading it returns the item's current "prop:pos"
// unless a value was stored explicitly.
//
// Neither store offers compare-and-swap. Callers that need atomic
// read-modify-write sequences serialize them (see the CLI's file lock).
package propstore

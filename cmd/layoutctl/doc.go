// Package main hosts the layoutctl CLI entrypoint and command graph.
//
// The Cobra-based command tree drives a layout.Engine against either the
// local SQLite property database or, when --socket is given, a running
// "layoutctl serve" instance. It centralizes configuration resolution, store
// selection, locking, and logging setup so subcommands only express the
// layout operation they perform.
//
// Keep this package lean: new behavior belongs in internal/layout or
// internal/propstore first, then gets surfaced here.
package main

// Package main hosts the ytvault CLI entrypoint and command graph.
//
// The Cobra-based command tree syncs YouTube playlists into a notes vault,
// rewrites transcript timestamps into deep links, lists past sync runs, and
// scaffolds configuration. Configuration is resolved once per invocation and
// shared by subcommands through commandContext.
//
// Keep this package lean: behavior lives in the internal packages and the
// commands here only parse flags, wire components, and format output.
package main

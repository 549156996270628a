// Package config loads, normalizes, and validates ytvault configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, loads an optional .env file, and honours environment fallbacks
// such as YOUTUBE_API_KEY. Commands that talk to the YouTube API or write into
// a vault call RequireSync before doing any work so missing credentials are
// reported up front.
package config

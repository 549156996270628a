// Package preflight provides readiness checks for the vault, the local state
// directory and the YouTube Data API credentials that ytvault depends on.
//
// The sync command runs RunAll before touching the vault so a missing
// directory or rejected API key fails fast. The "ytvault status" command
// renders the same results as a table.
package preflight

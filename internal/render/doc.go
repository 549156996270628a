// Package render turns playlist snapshots into note text.
//
// Rendering is pure: the same snapshot, clock, and date layout always produce
// the same bytes, and nothing here touches the vault. File and folder names
// are derived here too so links between notes always agree with the names the
// sync engine writes.
package render

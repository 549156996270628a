package render

import (
	"fmt"
	"strings"

	"ytvault/internal/textutil"
	"ytvault/internal/youtube"
)

// NoteExt is the extension of every note written to the vault.
const NoteExt = ".md"

// PlaylistName is the sanitized "<title> - <channel>" name shared by the
// playlist folder and its index note. It falls back to the playlist ID when
// sanitizing leaves nothing.
func PlaylistName(s *youtube.Snapshot) string {
	name := textutil.SanitizeName(s.Title + " - " + s.ChannelName)
	if strings.Trim(name, "- ") == "" {
		return textutil.SanitizeName(s.ID)
	}
	return name
}

// IndexFileName returns the file name of the playlist's index note.
func IndexFileName(s *youtube.Snapshot) string {
	return PlaylistName(s) + NoteExt
}

// ItemName returns the note name for an item without extension, e.g.
// "03 - Closures". Positions are zero padded to two digits.
func ItemName(item youtube.Item) string {
	title := textutil.SanitizeName(item.Title)
	if title == "" {
		title = item.VideoID
	}
	return fmt.Sprintf("%02d - %s", item.Position, title)
}

// ItemFileName returns the file name of an item note.
func ItemFileName(item youtube.Item) string {
	return ItemName(item) + NoteExt
}

// wikiLink builds [[target]] or [[target|alias]]. Characters that would end the
// link early are dropped from the alias.
func wikiLink(target, alias string) string {
	alias = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '|':
			return -1
		}
		return r
	}, alias)
	alias = strings.TrimSpace(alias)
	if alias == "" || alias == target {
		return "[[" + target + "]]"
	}
	return "[[" + target + "|" + alias + "]]"
}

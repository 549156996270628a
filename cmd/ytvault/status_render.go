package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusKind is the state shown in the tag column of `ytvault status`.
type statusKind int

const (
	statusReady statusKind = iota
	statusBlocked
	statusSynced
	statusSyncFailed
	statusSyncRunning
	statusNoHistory
	statusUnknown
)

type statusStyle struct {
	tag   string
	color string
}

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

var statusStyles = map[statusKind]statusStyle{
	statusReady:       {"ready", ansiGreen},
	statusBlocked:     {"blocked", ansiRed},
	statusSynced:      {"synced", ansiGreen},
	statusSyncFailed:  {"failed", ansiRed},
	statusSyncRunning: {"running", ansiYellow},
	statusNoHistory:   {"none", ansiDim},
	statusUnknown:     {"unknown", ansiYellow},
}

const (
	statusTagWidth  = 8
	statusNameWidth = 18
)

// renderStatusLine lays out one check as "  <tag> <name> <detail>". Only the
// tag is coloured.
func renderStatusLine(name string, kind statusKind, detail string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusUnknown]
	}
	tag := fmt.Sprintf("%-*s", statusTagWidth, style.tag)
	if colorize {
		tag = style.color + tag + ansiReset
	}
	return strings.TrimRight(fmt.Sprintf("  %s %-*s %s", tag, statusNameWidth, name, detail), " ")
}

func renderSection(title string, lines []string, colorize bool) []string {
	heading := title
	if colorize {
		heading = ansiBold + title + ansiReset
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, heading)
	return append(out, lines...)
}

func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

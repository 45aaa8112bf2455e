package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"layoutkit/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusStale
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

// checkStatus maps a preflight result onto a status line. A socket check that
// failed only because this host's own server answers is reported as OK.
func checkStatus(r preflight.Result, probe preflight.ServerProbe) (statusKind, string) {
	switch {
	case r.Passed:
		return statusOK, r.Detail
	case r.Name == preflight.SocketCheckName && probe.Running:
		return statusOK, probe.Detail()
	default:
		return statusError, r.Detail
	}
}

func probeStatus(probe preflight.ServerProbe) statusKind {
	switch {
	case probe.Running:
		return statusOK
	case probe.Exists:
		return statusStale
	default:
		return statusInfo
	}
}

func renderCheckLines(results []preflight.Result, probe preflight.ServerProbe, colorize bool) []string {
	lines := make([]string, 0, len(results)+1)
	for _, r := range results {
		kind, detail := checkStatus(r, probe)
		lines = append(lines, renderStatusLine(r.Name, kind, detail, colorize))
	}
	return append(lines, renderStatusLine("Property server", probeStatus(probe), probe.Detail(), colorize))
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColor(kind) + base + ansiReset
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusStale:
		return "STALE"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusStale:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

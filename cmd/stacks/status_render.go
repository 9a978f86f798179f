package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"stacks/internal/stacker"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
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

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return paint(base, statusKindColor(kind), colorize)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
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
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(line, ansiBlue, colorize), paint(rule, ansiBlue, colorize)}
}

func paint(s, color string, colorize bool) string {
	if !colorize || color == "" {
		return s
	}
	return color + s + ansiReset
}

// renderReport prints the problems of a run. With verbose set, every move
// and folder change is listed followed by a summary.
func renderReport(w io.Writer, report *stacker.Report, verbose, colorize bool) {
	if report == nil {
		return
	}
	for _, e := range report.Events {
		line, color := reportLine(e, verbose)
		if line != "" {
			fmt.Fprintln(w, paint(line, color, colorize))
		}
	}
	if verbose {
		fmt.Fprintln(w, paint(reportSummary(report), ansiBlue, colorize))
	}
}

func reportLine(e stacker.Event, verbose bool) (string, string) {
	switch e.Type {
	case stacker.EventFolderMissing:
		return e.Name + " not found.", ansiYellow
	case stacker.EventFolderNotEmpty:
		return fmt.Sprintf("Folder %s not empty", e.Name), ansiYellow
	case stacker.EventMoveFailed:
		return fmt.Sprintf("Could not move %s: %v", e.Name, e.Err), ansiRed
	}
	if !verbose {
		return "", ""
	}
	switch e.Type {
	case stacker.EventMoved:
		return fmt.Sprintf("%s -> %s", e.Name, e.Target), ""
	case stacker.EventRenamed:
		return fmt.Sprintf("%s -> %s (renamed)", e.Name, e.Target), ansiYellow
	case stacker.EventSkipped:
		return fmt.Sprintf("Skipped %s (%s)", e.Name, e.Reason), ""
	case stacker.EventFolderCreated:
		return fmt.Sprintf("Created folder %s", e.Name), ansiGreen
	case stacker.EventFolderRemoved:
		return fmt.Sprintf("Removed folder %s", e.Name), ansiGreen
	}
	return "", ""
}

func reportSummary(report *stacker.Report) string {
	return fmt.Sprintf("%d moved (%d renamed), %d skipped, %d failed",
		report.Moved(),
		report.Count(stacker.EventRenamed),
		report.Count(stacker.EventSkipped),
		report.Failed(),
	)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

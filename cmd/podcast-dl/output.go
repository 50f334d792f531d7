package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/podcast-downloader/internal/download"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// printer writes progress events one per line. Report lines are printed
// verbatim; color is only added on a terminal.
type printer struct {
	w        io.Writer
	colorize bool
	verbose  bool
}

func newPrinter(w io.Writer, verbose bool) *printer {
	return &printer{w: w, colorize: shouldColorize(w), verbose: verbose}
}

func (p *printer) printEvent(e download.ProgressEvent) {
	if e.Level == download.LevelVerbose && !p.verbose {
		return
	}
	fmt.Fprintln(p.w, p.style(e.Level, e.Message))
}

func (p *printer) style(level download.ProgressLevel, message string) string {
	if !p.colorize {
		return message
	}
	switch level {
	case download.LevelSuccess:
		return successStyle.Render(message)
	case download.LevelError:
		return errorStyle.Render(message)
	case download.LevelWarning:
		return warningStyle.Render(message)
	case download.LevelVerbose:
		return dimStyle.Render(message)
	default:
		return message
	}
}

func (p *printer) printSummary(s *download.Summary, dryRun bool) {
	if s == nil || !p.verbose {
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, renderSummary(s, dryRun))
}

// renderSummary formats the run counts as a table.
func renderSummary(s *download.Summary, dryRun bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Channel", "Episodes", "Downloaded", "Skipped", "Failed", "No enclosure", "Size"})

	downloaded := strconv.Itoa(s.Downloaded)
	if dryRun {
		downloaded = "-"
	}
	tw.AppendRow(table.Row{
		s.Channel,
		s.Episodes,
		downloaded,
		s.Skipped,
		s.Failed,
		s.NoEnclosure,
		formatBytes(s.Bytes),
	})

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i := 2; i <= 7; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

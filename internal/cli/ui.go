package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - tiles, numbers
	colorGreen  = lipgloss.Color("35")  // Green - success, cache hits
	colorYellow = lipgloss.Color("220") // Amber - warnings, oversized tiles
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links, commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for the preview header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for the selected tile.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for listen addresses.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths and setting values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for column counts and sizes.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Status Lines
// =============================================================================

// out receives command output. Logs go to the logger's writer instead.
var out io.Writer = os.Stdout

type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusIcons = map[statusKind]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorGreen)},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorRed)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorYellow)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorGray)},
}

func printStatus(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarning {
		msg = StyleWarning.Render(msg)
	}
	ic := statusIcons[kind]
	fmt.Fprintln(out, ic.style.Render(ic.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// ReportError writes err to w the way commands report failures: the
// message on a status line and, for coded errors, the code beneath it.
func ReportError(w io.Writer, err error) {
	ic := statusIcons[statusError]
	fmt.Fprintln(w, ic.style.Render(ic.icon)+" "+qterrors.UserMessage(err))
	if code := qterrors.GetCode(err); code != "" {
		fmt.Fprintln(w, "  "+StyleDim.Render(string(code)))
	}
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printNewline() {
	fmt.Fprintln(out)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Grid Summaries
// =============================================================================

// printStats prints one line summarizing a layout: tile count, grid shape,
// cell and frame size, and whether it came from the cache.
func printStats(res grid.Result, cached bool) {
	parts := []string{
		fmt.Sprintf("%d tiles", len(res.Placements)),
		fmt.Sprintf("%d×%d grid", res.Columns, res.Rows),
		fmt.Sprintf("cell %d×%dpx", res.CellWidth, res.CellHeight),
		fmt.Sprintf("frame %d×%dpx", res.FrameWidth, res.MeasuredHeight),
	}
	for i := range parts {
		parts[i] = StyleDim.Render(parts[i])
	}

	status := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	parts = append(parts, status)
	fmt.Fprintln(out, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printSnapshot prints the values a layout pass would read.
func printSnapshot(snap settings.Snapshot) {
	rows := []struct{ label, value string }{
		{"columns", strconv.Itoa(snap.Columns)},
		{"duplicate", strconv.FormatBool(snap.DuplicateColumnsInLandscape)},
		{"cell gap", strconv.FormatFloat(snap.CellGap, 'f', -1, 64) + "px"},
		{"text size", strconv.Itoa(snap.TextSize) + "px"},
	}
	for _, r := range rows {
		fmt.Fprintln(out, styleLabel.Render(r.label)+" "+StyleNumber.Render(r.value))
	}
}

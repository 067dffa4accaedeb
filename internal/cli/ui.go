package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mdimg/mdimg/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a labeled detail line (indented).
func printDetail(key, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + styleKey.Render(key) + " " + StyleValue.Render(msg))
}

// =============================================================================
// Result Summary
// =============================================================================

// printResult renders the post-run summary for a pipeline result.
func printResult(document string, r *pipeline.Result) {
	switch r.Mode {
	case pipeline.ModeRename:
		printSuccess("Renamed %d image file(s) referenced by %s", r.Renamed, document)
		printDetail("rewritten", "%d line(s)", r.Rewritten)
	default:
		printSuccess("Embedded images in %s", document)
		printDetail("references", "%d label(s)", r.References)
		printDetail("rewritten", "%d line(s)", r.Rewritten)
		printDetail("dropped", "%d data block(s)", r.DroppedBlocks)
		printDetail("appended", "%d data block(s), %d byte(s) encoded", r.AppendedBlocks, r.BytesEncoded)
		if r.SkippedMissing > 0 {
			printWarning("%d image(s) disappeared before encoding and were skipped", r.SkippedMissing)
		}
	}
	if r.BackupPath != "" {
		printDetail("backup", "%s", r.BackupPath)
	}
	printDetail("duration", "%s", r.Stats.TotalTime.Round(time.Millisecond))
}

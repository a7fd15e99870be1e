package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // teal - spinner and emphasis
	colorGreen = lipgloss.Color("35")  // green - success
	colorRed   = lipgloss.Color("167") // soft red - errors
	colorGray  = lipgloss.Color("245") // gray - secondary text
	colorDim   = lipgloss.Color("240") // dim gray - muted text
	colorWhite = lipgloss.Color("255") // bright white - values
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the output file line.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printStats prints the graph statistics and whether the cargo output came
// from the cache.
func printStats(nodeCount, edgeCount int, cached bool) {
	status := iconFresh
	statusStyle := styleInfo
	if cached {
		status = iconCached
		statusStyle = styleSuccess
	}

	sep := styleDim.Render(" · ")
	fmt.Println("  " +
		styleDim.Render(fmt.Sprintf("%d crates", nodeCount)) + sep +
		styleDim.Render(fmt.Sprintf("%d edges", edgeCount)) + sep +
		statusStyle.Render(status))
}

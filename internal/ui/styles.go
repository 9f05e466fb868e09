// Package ui holds terminal styling for trackctl output.
package ui

import (
	"fmt"
	"strings"
)

// ANSI256 color codes for stage status rendering.
const (
	colorFarm         = 70  // green
	colorProcessing   = 178 // amber
	colorQualityCheck = 214 // orange
	colorWarehouse    = 74  // blue
	colorDistribution = 140 // purple
	colorRetail       = 168 // pink
	colorMuted        = 245 // medium gray
)

var noColor bool

// statusColors maps lowercase stage names to their display color.
var statusColors = map[string]int{
	"farm":          colorFarm,
	"processing":    colorProcessing,
	"quality check": colorQualityCheck,
	"warehouse":     colorWarehouse,
	"distribution":  colorDistribution,
	"retail":        colorRetail,
}

// RenderStatus returns the stage status colored by its position in the
// custody chain. Unknown statuses render muted.
func RenderStatus(s string) string {
	if noColor {
		return s
	}
	color, ok := statusColors[strings.ToLower(s)]
	if !ok {
		color = colorMuted
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

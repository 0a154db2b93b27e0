package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	minPlotWidth        = 10
	terminalWidthBackup = 80
	labelWidth          = 10
	// Room for the label and the min/max/last readout.
	plotChrome = labelWidth + 34
)

// Series is one named row of a curve chart.
type Series struct {
	Name   string
	Unit   string
	Values []float64
}

var seriesColors = []string{"\x1b[33m", "\x1b[36m", "\x1b[35m", "\x1b[32m"}

const colorReset = "\x1b[0m"

// RenderSeries prints each series as a sparkline scaled to its own range,
// followed by its minimum, maximum and last value.
func RenderSeries(w io.Writer, title string, series []Series, width int, useColor bool) error {
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth())
	}
	useColor = useColor && colorAllowed()
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		line := Sparkline(resampleSeries(s.Values, min(width, max(len(s.Values), 1))))
		if useColor {
			line = seriesColors[i%len(seriesColors)] + line + colorReset
		}
		lo, hi := minMax(s.Values)
		last := s.Values[len(s.Values)-1]
		if _, err := fmt.Fprintf(w, "%s %s  min %s max %s last %s\n",
			padLabel(s.Name), line, formatValue(lo, s.Unit), formatValue(hi, s.Unit), formatValue(last, s.Unit)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func padLabel(name string) string {
	name = runewidth.Truncate(name, labelWidth, "")
	return runewidth.FillRight(name, labelWidth)
}

func formatValue(v float64, unit string) string {
	if unit == "%" {
		return fmt.Sprintf("%.1f%%", v)
	}
	return fmt.Sprintf("%.0f%s", v, unit)
}

// PlotWidthFor computes a sparkline width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-plotChrome, minPlotWidth)
}

// TerminalWidth returns the stdout terminal width, or a fallback when stdout is
// not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func colorAllowed() bool {
	return os.Getenv("NO_COLOR") == ""
}

// ShouldUseColor reports whether w is a terminal that accepts ANSI colors.
func ShouldUseColor(w io.Writer) bool {
	if !colorAllowed() {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// resampleSeries stretches or averages values down to width points.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	if len(values) >= width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

// padToWidth pads s with spaces up to width display columns.
func padToWidth(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

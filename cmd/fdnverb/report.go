package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-fdn/measure/level"
)

var (
	accentColor = lipgloss.Color("#2E86AB")
	warnColor   = lipgloss.Color("#FFA500")
	errorColor  = lipgloss.Color("#A40000")
	mutedColor  = lipgloss.Color("#888888")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

func printError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+msg)
}

func printRenderReport(c *RenderCmd, res *renderResult) {
	fmt.Println(titleStyle.Render("fdnverb render"))
	fmt.Println(mutedStyle.Render("wrote " + c.Output))

	fmt.Println(sectionStyle.Render("Reverb"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  room size\t%.1f ms\n", c.RoomSize)
	fmt.Fprintf(w, "  diffusion stages\t%d\n", c.Steps)
	fmt.Fprintf(w, "  loop gain\t%.6f\n", res.decayGain)
	fmt.Fprintf(w, "  longest delay\t%d samples\n", res.tailLength)
	fmt.Fprintf(w, "  dry / wet\t%.3f / %.3f\n", c.Dry, c.Wet)
	w.Flush()

	fmt.Println(sectionStyle.Render("Decay"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  RT60 requested\t%.3f s\n", c.RT60)
	fmt.Fprintf(w, "  RT60 measured\t%s\n", seconds(res.metrics.RT60))
	fmt.Fprintf(w, "  -60 dB crossing\t%s\n", seconds(res.crossing))
	fmt.Fprintf(w, "  EDT\t%s\n", seconds(res.metrics.EDT))
	fmt.Fprintf(w, "  T20 / T30\t%s / %s\n", seconds(res.metrics.T20), seconds(res.metrics.T30))
	fmt.Fprintf(w, "  C50 / C80\t%.2f / %.2f dB\n", res.metrics.C50, res.metrics.C80)
	fmt.Fprintf(w, "  D50\t%.3f\n", res.metrics.D50)
	fmt.Fprintf(w, "  centre time\t%s\n", seconds(res.metrics.CenterTime))
	fmt.Fprintf(w, "  spectral flatness\t%.3f\n", res.flatness)
	w.Flush()

	printLevels(res.levels, res.gain)
}

func printProcessReport(c *ProcessCmd, src *source, tailLength int, gain float64, levels [2]level.Stats) {
	fmt.Println(titleStyle.Render("fdnverb process"))
	fmt.Println(mutedStyle.Render(c.Input + " -> " + c.Output))

	fmt.Println(sectionStyle.Render("Input"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  channels\t%d\n", len(src.channels))
	fmt.Fprintf(w, "  sample rate\t%d Hz\n", src.sampleRate)
	fmt.Fprintf(w, "  bit depth\t%d\n", src.bitDepth)
	fmt.Fprintf(w, "  length\t%.3f s\n", float64(src.frames())/float64(src.sampleRate))
	w.Flush()

	fmt.Println(sectionStyle.Render("Reverb"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  room size / RT60\t%.1f ms / %.3f s\n", c.RoomSize, c.RT60)
	fmt.Fprintf(w, "  dry / wet\t%.3f / %.3f\n", c.Dry, c.Wet)
	fmt.Fprintf(w, "  longest delay\t%d samples\n", tailLength)
	fmt.Fprintf(w, "  appended tail\t%.3f s\n", c.Tail)
	w.Flush()

	printLevels(levels, gain)
}

func printLevels(levels [2]level.Stats, gain float64) {
	fmt.Println(sectionStyle.Render("Output level"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tpeak\tRMS\tcrest")
	for i, name := range []string{"left", "right"} {
		s := levels[i]
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f dB\n", name, dbfs(s.PeakDB), dbfs(s.RMSDB), s.CrestFactorDB)
	}
	if gain != 1 {
		fmt.Fprintf(w, "  normalization\t%+.2f dB\t\t\n", 20*math.Log10(gain))
	}
	w.Flush()

	if clipped := levels[0].Clipped + levels[1].Clipped; clipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("warning: %d samples clipped; lower --wet or use --normalize", clipped)))
	}
}

func seconds(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return mutedStyle.Render("n/a")
	}

	return fmt.Sprintf("%.3f s", v)
}

func dbfs(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return strings.TrimSpace(fmt.Sprintf("%6.2f dBFS", v))
}

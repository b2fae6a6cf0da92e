// ABOUTME: Result report rendering for the CLI
// ABOUTME: Prints a styled run summary and, in verbose mode, the slide list with per-transition scores

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"slideshow-sorter/photo"
	"slideshow-sorter/selector"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// maxTagsWidth limits the tag column of the slide list
const maxTagsWidth = 40

// renderReport writes the run summary and, when verbose, the slide list
func renderReport(w io.Writer, run selector.Run, verbose bool) error {
	if _, err := fmt.Fprintln(w, renderSummary(run)); err != nil {
		return err
	}

	if !verbose {
		return nil
	}

	return writeSlideTable(w, run.Slides)
}

// renderSummary returns the boxed key/value summary of a run
func renderSummary(run selector.Run) string {
	gain := run.Score - run.InitialScore
	gainStyle := valueStyle
	switch {
	case gain > 0:
		gainStyle = lipgloss.NewStyle().Foreground(colorGreen)
	case gain < 0:
		gainStyle = lipgloss.NewStyle().Foreground(colorRed)
	}

	lines := []string{titleStyle.Render("Slideshow")}
	row := func(label string, style lipgloss.Style, value any) {
		lines = append(lines, labelStyle.Render(label)+style.Render(fmt.Sprint(value)))
	}

	row("Heuristic", valueStyle, run.Heuristic)
	row("Slides", valueStyle, len(run.Slides))
	row("Initial score", valueStyle, run.InitialScore)
	row("Final score", valueStyle, run.Score)
	row("Gain", gainStyle, fmt.Sprintf("%+d", gain))

	// Runs that never searched have no id
	if run.ID != "" {
		row("Stopped by", valueStyle, run.Stop)
		row("Iterations", valueStyle, max(run.Iterations, int64(run.Generations)))
		row("Accepted", valueStyle, run.StateChanges)
		row("Seed", valueStyle, run.Seed)
		row("Duration", valueStyle, run.Duration.Round(time.Millisecond))
	}

	return summaryStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// writeSlideTable prints one row per slide with the score of the transition into the next slide
func writeSlideTable(w io.Writer, slides []photo.Slide) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "#\tKind\tPhotos\tTags\tNext"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintln(tw, "---\t----\t------\t----\t----"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for i, slide := range slides {
		kind := "H"
		if slide.IsVertical() {
			kind = "VV"
		}

		next := "-"
		if i+1 < len(slides) {
			next = fmt.Sprint(selector.TransitionScore(slide.Tags(), slides[i+1].Tags()))
		}

		tags := slide.Tags().ToSlice()
		slices.Sort(tags)

		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			kind,
			slide.String(),
			truncate(strings.Join(tags, ","), maxTagsWidth),
			next,
		); err != nil {
			return fmt.Errorf("failed to write slide %d: %w", i+1, err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

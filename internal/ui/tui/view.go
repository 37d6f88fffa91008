package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderFiles(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render("topocheck validate"))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += passedStyle.Render("Done")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame))
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	total := len(m.Files)
	done := m.Finished()

	barWidth := 40
	if m.Width > 0 && m.Width < 60 {
		barWidth = max(m.Width-20, 10)
	}
	filled := 0
	if total > 0 {
		filled = barWidth * done / total
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))
	fmt.Fprintf(b, "  %s %d/%d\n", bar, done, total)
}

func renderFiles(b *strings.Builder, m Model) {
	for _, f := range m.Files {
		var icon string
		switch f.Status {
		case StatusPassed:
			icon = passedStyle.Render(checkMark)
		case StatusFailed:
			icon = failedStyle.Render(crossMark)
		case StatusErrored:
			icon = warningStyle.Render(warnMark)
		case StatusRunning:
			icon = activeStyle.Render(currentSpinner(m.SpinnerFrame))
		default:
			icon = dimStyle.Render(pending)
		}

		fmt.Fprintf(b, "    %s %s", icon, f.Name)
		if f.Detail != "" {
			fmt.Fprintf(b, "  %s", dimStyle.Render(f.Detail))
		}
		b.WriteString("\n")
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed %s  q to quit", elapsed)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

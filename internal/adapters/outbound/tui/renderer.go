package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guardlens/guardlens/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	faintStyle     = lipgloss.NewStyle().Foreground(faint)
	passStyle      = lipgloss.NewStyle().Foreground(success)
	failStyle      = lipgloss.NewStyle().Foreground(danger)
	warnStyle      = lipgloss.NewStyle().Foreground(warning)
	ruleStyle      = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	resourceStyle  = lipgloss.NewStyle().Foreground(fg)
	locationStyle  = lipgloss.NewStyle().Foreground(dim)
	separatorLine  = faintStyle.Render(strings.Repeat("─", 64))
	wrapWidth      = 60
	statusStyles   = map[bool]lipgloss.Style{true: passStyle.Bold(true), false: failStyle.Bold(true)}
	noCommitMarker = "·······"
)

// RenderReport formats a validation report for the terminal.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("guardlens")
	subtitle := dimStyle.Render(report.PluginName)
	status := statusStyles[report.Success].Render(report.Status())
	counts := dimStyle.Render(fmt.Sprintf("%d violations · %d resources",
		len(report.Violations), report.ResourceCount()))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + status + "  " + counts))
	b.WriteString("\n\n")

	// ── Violations ──
	for i, v := range report.Violations {
		renderViolation(&b, v)
		if i < len(report.Violations)-1 {
			b.WriteString("\n")
		}
	}
	if len(report.Violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
	}

	// ── Failures ──
	if len(report.Failures) > 0 {
		b.WriteString("\n  " + failStyle.Bold(true).Render("Unreadable results") + "\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("✗"), resourceStyle.Render(f.ResultPath))
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render(f.Error))
		}
	}

	// ── Footer ──
	b.WriteString("\n  " + separatorLine + "\n")
	footer := []string{shortHash(report.CommitHash)}
	if !report.Timestamp.IsZero() {
		footer = append(footer, report.Timestamp.Format("2006-01-02 15:04:05Z07:00"))
	}
	if report.Suppressed > 0 {
		footer = append(footer, warnStyle.Render(fmt.Sprintf("%d suppressed by baseline", report.Suppressed)))
	}
	b.WriteString("  " + dimStyle.Render(strings.Join(footer, "  ")) + "\n")

	return b.String()
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	fmt.Fprintf(b, "  %s %s\n", failStyle.Render("●"), ruleStyle.Render(v.RuleName))
	if v.Description != "" {
		writeField(b, "description", v.Description)
	}
	writeField(b, "fix", v.Fix)
	if url := v.RuleMetadata.DocumentationURL; url != "" {
		writeField(b, "docs", url)
	}

	for _, r := range v.ViolatingResources {
		id := r.ResourceLogicalID
		if id == "" {
			id = "(template)"
		}
		line := fmt.Sprintf("    %s %s", warnStyle.Render("▸"), resourceStyle.Render(id))
		if r.TemplatePath != "" {
			line += "  " + faintStyle.Render(r.TemplatePath)
		}
		b.WriteString(line + "\n")
		for _, loc := range r.Locations {
			fmt.Fprintf(b, "        %s\n", locationStyle.Render(loc))
		}
	}
}

func writeField(b *strings.Builder, label, text string) {
	body := lipgloss.NewStyle().Width(wrapWidth).Render(strings.TrimSpace(text))
	lines := strings.Split(body, "\n")
	fmt.Fprintf(b, "    %s %s\n", labelStyle.Render(padRight(label, 12)), dimStyle.Render(strings.TrimRight(lines[0], " ")))
	for _, l := range lines[1:] {
		fmt.Fprintf(b, "    %s %s\n", padRight("", 12), dimStyle.Render(strings.TrimRight(l, " ")))
	}
}

func shortHash(hash string) string {
	if hash == "" {
		return noCommitMarker
	}
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats recorded runs for terminal output, oldest first.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No recorded runs found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + ruleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(padRight(date, 10)),
			faintStyle.Render(shortHash(e.CommitHash)),
			statusStyles[e.Success].Render(domain.StatusFor(e.Success)),
			resourceStyle.Render(fmt.Sprintf("%d violations", e.Violations)),
		)

		if i > 0 {
			diff := e.Violations - entries[i-1].Violations
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}
		if e.Failures > 0 {
			line += "  " + failStyle.Render(fmt.Sprintf("%d unreadable", e.Failures))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

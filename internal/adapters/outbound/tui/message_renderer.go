package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guardlens/guardlens/internal/domain/message"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderMessage shows how a custom message splits into fix and description.
// defaultFix is shown when the message carries no fix text.
func RenderMessage(p message.Parsed, defaultFix string) string {
	var b strings.Builder

	b.WriteString("\n")
	renderMessageSection(&b, "Description", p.Description, p.HasDescription, "")
	renderMessageSection(&b, "Fix", p.Fix, p.HasFix, defaultFix)

	if !p.HasFix {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render(`Start a segment with "[FIX]:" or "Fix:" to set the fix.`))
		b.WriteString("\n")
	}

	return b.String()
}

func renderMessageSection(b *strings.Builder, title, text string, set bool, fallback string) {
	fmt.Fprintf(b, "  %s\n", sectionHeaderStyle.Render(title))
	switch {
	case set && text != "":
		fmt.Fprintf(b, "    %s %s\n", passStyle.Render("●"), text)
	case set:
		fmt.Fprintf(b, "    %s %s\n", warnStyle.Render("●"), dimStyle.Render("(empty)"))
	case fallback != "":
		fmt.Fprintf(b, "    %s %s  %s\n", faintStyle.Render("○"), fallback, dimStyle.Render("(default)"))
	default:
		fmt.Fprintf(b, "    %s %s\n", faintStyle.Render("○"), dimStyle.Render("(not set)"))
	}
}

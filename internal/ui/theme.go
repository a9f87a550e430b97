package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SkillPlan theme (CLI + TUI).

const (
	IconPlan    = "🗓️"
	IconSkill   = "🎯"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconSkip    = "⏭️"
	IconBreak   = "☕"
	IconDabble  = "🎲"
	IconClock   = "⏱️"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconHistory = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PriorityText colors a priority name; levels are 1 (Core) to 4 (Dabbler).
func PriorityText(level int, name string) string {
	switch level {
	case 1:
		return Bad.Render(name)
	case 2:
		return Warn.Render(name)
	case 3:
		return H2.Render(name)
	default:
		return Muted.Render(name)
	}
}

// TaskState renders a row's check-in state.
func TaskState(completed, skipped bool) string {
	switch {
	case completed:
		return Good.Render("done")
	case skipped:
		return Warn.Render("skipped")
	default:
		return Muted.Render("pending")
	}
}

// KindIcon picks the glyph for a task kind (session, break, dabble).
func KindIcon(kind string) string {
	switch kind {
	case "break":
		return IconBreak
	case "dabble":
		return IconDabble
	default:
		return IconSkill
	}
}

// Minutes renders a duration as "1h30m" or "45m".
func Minutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

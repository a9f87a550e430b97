package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skillplan/internal/engine"
	"skillplan/internal/storage"
	"skillplan/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	keys keyMap
	help help.Model

	width  int
	height int

	days     []engine.PlanDay
	overview *engine.Overview
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	days     []engine.PlanDay
	overview *engine.Overview
	err      error
}

type checkedInMsg struct {
	res *engine.CheckinResult
	err error
}

type generatedMsg struct {
	res *engine.PlanResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		keys:    defaultKeys(),
		help:    help.New(),
		loading: true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		days, err := m.svc.UpcomingPlan(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		o, err := m.svc.Overview(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{days: days, overview: o}
	}
}

func (m boardModel) checkInCmd(id int64, outcome engine.Outcome) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CheckIn(m.ctx, id, outcome)
		return checkedInMsg{res: res, err: err}
	}
}

func (m boardModel) generateCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.GeneratePlan(m.ctx)
		return generatedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		explicit := m.loading
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.days = msg.days
		m.overview = msg.overview
		m.clampSelection()
		// Reloads after an action keep that action's message.
		if explicit {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05"))
		}
		return m, nil
	case checkedInMsg:
		if msg.err != nil {
			m.lastLog = "Check-in failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeCheckin(msg.res)
		return m, m.loadCmd()
	case generatedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrNoProfile) {
				m.lastLog = "No profile yet: run 'skillplan profile set' first."
			} else {
				m.lastLog = "Generate failed: " + msg.err.Error()
			}
			return m, nil
		}
		if msg.res.Empty {
			m.lastLog = "No skills to plan. Add one with 'skillplan skill add'."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Planned %d sessions (%s).", len(msg.res.Tasks), ui.Minutes(msg.res.TotalMinutes()))
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.Generate):
			m.lastLog = "Generating…"
			return m, m.generateCmd()
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case key.Matches(msg, m.keys.Done):
			return m.checkInSelected(engine.OutcomeDone)
		case key.Matches(msg, m.keys.Skip):
			return m.checkInSelected(engine.OutcomeSkip)
		}
	}
	return m, nil
}

func (m boardModel) checkInSelected(outcome engine.Outcome) (tea.Model, tea.Cmd) {
	t := m.selectedTask()
	if t == nil {
		m.lastLog = "Nothing selected."
		return m, nil
	}
	if t.IsCompleted || t.IsSkipped {
		m.lastLog = "Already checked in."
		return m, nil
	}
	if !engine.SameDate(t.ScheduledDate, m.svc.Now()) {
		m.lastLog = "Only today's sessions can be checked in."
		return m, nil
	}
	m.lastLog = fmt.Sprintf("Recording %s for %s…", outcome, t.SkillName)
	return m, m.checkInCmd(t.ID, outcome)
}

func describeCheckin(res *engine.CheckinResult) string {
	switch res.Outcome {
	case engine.OutcomeDone:
		return fmt.Sprintf("%s %s: %s practiced, debt %d → %d", ui.IconDone, res.SkillName, ui.Minutes(res.Minutes), res.DebtBefore, res.DebtAfter)
	default:
		return fmt.Sprintf("%s %s skipped: debt %d → %d", ui.IconSkip, res.SkillName, res.DebtBefore, res.DebtAfter)
	}
}

// rows flattens the week into selectable task rows, in display order.
func (m boardModel) rows() []storage.WeeklyTask {
	var out []storage.WeeklyTask
	for _, d := range m.days {
		out = append(out, d.Tasks...)
	}
	return out
}

func (m boardModel) selectedTask() *storage.WeeklyTask {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return nil
	}
	return &rows[m.selected]
}

func (m *boardModel) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()

	leftW := 28
	if m.width > 0 {
		leftW = min(leftW, m.width/2)
		leftW = max(leftW, 18)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	n := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < n; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n\n" + body.String() + "\n" + m.lastLog + "\n" + m.help.View(m.keys)
}

func (m boardModel) renderHeader() string {
	o := m.overview
	if o == nil {
		return ui.Heading(ui.IconPlan, "SkillPlan | loading…")
	}
	name := "no profile"
	if o.Profile != nil {
		name = o.Profile.Name
	}
	return ui.Heading(ui.IconPlan, fmt.Sprintf("SkillPlan | %s | %d sessions left this week (%s)",
		name, o.UpcomingTasks, ui.Minutes(o.UpcomingMinutes)))
}

func (m boardModel) renderSidebar() string {
	o := m.overview
	if o == nil {
		return "Today\n\nLoading…"
	}
	lines := []string{
		ui.PanelTitle.Render("Today"),
		fmt.Sprintf("- pending %d", o.TodayPending),
		fmt.Sprintf("- done    %d", o.TodayDone),
		fmt.Sprintf("- skipped %d", o.TodaySkipped),
		"",
		ui.PanelTitle.Render("Skills"),
	}
	for _, p := range engine.Priorities {
		lines = append(lines, fmt.Sprintf("- %-10s %d", p.String(), o.ByPriority[p]))
	}
	lines = append(lines,
		"",
		ui.PanelTitle.Render("Debt"),
		fmt.Sprintf("- core  %s", debtBar(o.CoreDebt, engine.MaxCoreDebt, 12)),
		fmt.Sprintf("- total %s", ui.Minutes(o.TotalDebt)),
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.days) == 0 {
		return "No sessions planned. Press g to generate the week."
	}

	var out []string
	row := 0
	for _, d := range m.days {
		title := fmt.Sprintf("%s %s  %s", d.Date.Format("Mon"), storage.FormatDate(d.Date), ui.Minutes(d.TotalMinutes()))
		if engine.SameDate(d.Date, m.svc.Now()) {
			title += "  (today)"
		}
		out = append(out, ui.H2.Render(title))
		for _, t := range d.Tasks {
			cursor := "  "
			line := fmt.Sprintf("%s %-16s %6s  %s", ui.KindIcon(t.Kind), t.SkillName, ui.Minutes(t.DurationMinutes), ui.TaskState(t.IsCompleted, t.IsSkipped))
			if row == m.selected {
				cursor = "> "
				line = ui.SelectedRow.Render(line)
			}
			out = append(out, cursor+line)
			row++
		}
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func debtBar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	value = min(max(value, 0), total)
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "] " + ui.Minutes(value)
}

// padRight pads by display width so styled cells line up.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

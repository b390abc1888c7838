package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
)

// ganttKeyMap defines the keyboard bindings of the gantt view.
type ganttKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	EndLeft    key.Binding
	EndRight   key.Binding
	StartLeft  key.Binding
	StartRight key.Binding
	ToggleBar  key.Binding
	CycleView  key.Binding
	Commit     key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

func defaultGanttKeys() ganttKeyMap {
	return ganttKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		MoveLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "move bar")),
		MoveRight:  key.NewBinding(key.WithKeys("right", "l")),
		EndLeft:    key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←/→", "resize end")),
		EndRight:   key.NewBinding(key.WithKeys("shift+right", "L")),
		StartLeft:  key.NewBinding(key.WithKeys("ctrl+left", "["), key.WithHelp("[/]", "resize start")),
		StartRight: key.NewBinding(key.WithKeys("ctrl+right", "]")),
		ToggleBar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "plan/actual")),
		CycleView:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "day/week/month")),
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k ganttKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.MoveLeft, k.EndLeft, k.StartLeft, k.ToggleBar, k.CycleView, k.Commit, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ganttKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ganttModel is the bubbletea Model for the interactive schedule view.
// Gestures accumulate in a DragState and nothing touches the store
// until the gesture commits.
type ganttModel struct {
	app     *App
	project *domain.Project

	tasks  []*domain.Task
	forest *schedule.Forest
	rows   []*schedule.TreeNode

	cursor   int
	bar      domain.BarType
	viewMode domain.ViewMode
	drag     *schedule.DragState

	width  int
	status string
	keys   ganttKeyMap
	help   help.Model

	quitting bool
}

func newGanttModel(app *App, project *domain.Project, tasks []*domain.Task) ganttModel {
	m := ganttModel{
		app:      app,
		project:  project,
		bar:      domain.BarPlan,
		viewMode: domain.ViewWeek,
		keys:     defaultGanttKeys(),
		help:     help.New(),
		width:    100,
	}
	m.setTasks(tasks)
	return m
}

// setTasks replaces the snapshot and rebuilds the derived row list.
func (m *ganttModel) setTasks(tasks []*domain.Task) {
	m.tasks = tasks
	m.forest = schedule.BuildForest(tasks)
	m.rows = flattenForest(m.forest)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func flattenForest(f *schedule.Forest) []*schedule.TreeNode {
	var rows []*schedule.TreeNode
	var walk func(nodes []*schedule.TreeNode)
	walk = func(nodes []*schedule.TreeNode) {
		for _, n := range nodes {
			rows = append(rows, n)
			walk(n.Children)
		}
	}
	walk(f.Roots)
	return rows
}

func (m ganttModel) current() *schedule.TreeNode {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m ganttModel) Init() tea.Cmd {
	return nil
}

func (m ganttModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.drag == nil && m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.drag == nil && m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.MoveLeft):
			return m.nudge(domain.OpMove, -1), nil
		case key.Matches(msg, m.keys.MoveRight):
			return m.nudge(domain.OpMove, 1), nil
		case key.Matches(msg, m.keys.EndLeft):
			return m.nudge(domain.OpResizeRight, -1), nil
		case key.Matches(msg, m.keys.EndRight):
			return m.nudge(domain.OpResizeRight, 1), nil
		case key.Matches(msg, m.keys.StartLeft):
			return m.nudge(domain.OpResizeLeft, -1), nil
		case key.Matches(msg, m.keys.StartRight):
			return m.nudge(domain.OpResizeLeft, 1), nil

		case key.Matches(msg, m.keys.ToggleBar):
			if m.drag != nil {
				m.status = "finish or discard the current gesture first"
				return m, nil
			}
			if m.bar == domain.BarPlan {
				m.bar = domain.BarActual
			} else {
				m.bar = domain.BarPlan
			}
			return m, nil

		case key.Matches(msg, m.keys.CycleView):
			switch m.viewMode {
			case domain.ViewDay:
				m.viewMode = domain.ViewWeek
			case domain.ViewWeek:
				m.viewMode = domain.ViewMonth
			default:
				m.viewMode = domain.ViewDay
			}
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			if m.drag != nil {
				m.drag = nil
				m.status = "discarded"
			}
			return m, nil

		case key.Matches(msg, m.keys.Commit):
			return m.commit(), nil
		}
	}
	return m, nil
}

// nudge moves the active gesture by one day, starting it if needed. A
// gesture locks its operation; mixing move and resize is rejected.
func (m ganttModel) nudge(op domain.DragOp, days int) ganttModel {
	node := m.current()
	if node == nil {
		return m
	}
	if node.Kind == schedule.KindGroup && op != domain.OpMove {
		m.status = "groups only move; their edges are rolled up"
		return m
	}
	if m.drag == nil {
		d := schedule.StartDrag(m.forest, node.Task, m.bar, op)
		m.drag = &d
	} else if m.drag.Op != op {
		m.status = "finish or discard the current gesture first"
		return m
	}

	// Cumulative delta from the gesture origin.
	base := m.drag.StartDelta()
	if op == domain.OpResizeRight {
		base = m.drag.EndDelta()
	}
	m.drag.Update(base + days)
	m.status = ""
	return m
}

// commit persists the active gesture through the cascade pipeline and
// reloads the authoritative snapshot.
func (m ganttModel) commit() ganttModel {
	if m.drag == nil {
		return m
	}
	if !m.drag.Changed() {
		m.drag = nil
		return m
	}

	res, err := m.app.Gantt.CommitDrag(context.Background(), *m.drag)
	if err != nil {
		m.status = fmt.Sprintf("commit failed: %v", err)
		return m
	}
	m.drag = nil
	m.setTasks(res.Tasks)

	m.status = fmt.Sprintf("updated %d task(s)", len(res.Patches))
	if len(res.CycleIDs) > 0 {
		names := make([]string, 0, len(res.CycleIDs))
		for _, id := range res.CycleIDs {
			if n := m.forest.Node(id); n != nil {
				names = append(names, n.Task.Name)
			}
		}
		m.status = fmt.Sprintf("dependency cycle through %s", strings.Join(names, ", "))
	}
	return m
}

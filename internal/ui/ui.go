package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/task"
	"todo/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

const (
	fieldText = iota
	fieldDue
	fieldPriority
	fieldCount
)

type formState struct {
	text     string
	due      string
	priority task.Priority
	index    int
}

type noticeExpiredMsg struct{ seq int }

type Model struct {
	ctrl   *controller.Controller
	scr    *Screen
	cfg    config.Config
	cursor int
	mode   mode
	input  textinput.Model
	form   *formState
	editID int64
}

func New(ctrl *controller.Controller, scr *Screen, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctrl:  ctrl,
		scr:   scr,
		cfg:   cfg,
		input: ti,
		mode:  modeList,
	}
}

func Run(ctrl *controller.Controller, scr *Screen, cfg config.Config) error {
	ctrl.Refresh()
	program := tea.NewProgram(New(ctrl, scr, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.expireCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.scr.noticeSeq
	m, cmd := m.update(msg)
	if m.scr.noticeSeq != seq {
		cmd = tea.Batch(cmd, m.expireCmd())
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scr.confirm != nil {
			return m.updateConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case noticeExpiredMsg:
		m.scr.dismiss(msg.seq)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// expireCmd schedules removal of the current notice when it is transient.
func (m Model) expireCmd() tea.Cmd {
	n := m.scr.notice
	if n == nil || !n.Transient {
		return nil
	}
	seq := m.scr.noticeSeq
	d := time.Duration(m.cfg.NoticeSeconds) * time.Second
	if d <= 0 {
		d = 3 * time.Second
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m Model) items() []view.Item {
	return m.scr.snap.Items
}

func (m Model) selected() (view.Item, bool) {
	items := m.items()
	if len(items) == 0 {
		return view.Item{}, false
	}
	return items[clampCursor(m.cursor, len(items))], true
}

func (m Model) updateListMode(key string) (Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.items()))
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.items()))
	case k.Add:
		m.form = &formState{priority: m.cfg.Priority()}
		m.mode = modeAdd
		m.loadField()
		m.input.Focus()
	case k.Toggle:
		if it, ok := m.selected(); ok {
			m.ctrl.Toggle(it.ID)
		}
	case k.Delete:
		if it, ok := m.selected(); ok {
			m.ctrl.Delete(it.ID)
		}
	case k.Edit:
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editID = it.ID
		m.mode = modeEdit
		m.input.Placeholder = "Task title"
		m.input.SetValue(it.Text)
		m.input.CursorEnd()
		m.input.Focus()
	case k.FilterAll:
		m.ctrl.SetStatusFilter(view.StatusAll)
	case k.FilterActive:
		m.ctrl.SetStatusFilter(view.StatusActive)
	case k.FilterCompleted:
		m.ctrl.SetStatusFilter(view.StatusCompleted)
	case k.ShowLow:
		m.ctrl.TogglePriority(task.PriorityLow)
	case k.ShowMedium:
		m.ctrl.TogglePriority(task.PriorityMedium)
	case k.ShowHigh:
		m.ctrl.TogglePriority(task.PriorityHigh)
	case k.SortCreated:
		m.ctrl.SetSort(view.SortDefault)
	case k.SortDue:
		m.ctrl.SetSort(view.SortDueDate)
	case k.SortPriority:
		m.ctrl.SetSort(view.SortPriority)
	case k.ClearCompleted:
		m.ctrl.ClearCompleted()
	case k.Theme:
		m.ctrl.ToggleTheme()
	case k.Cancel:
		m.scr.notice = nil
	}
	m.cursor = clampCursor(m.cursor, len(m.items()))
	return m, nil
}

func (m Model) updateConfirm(key string) (Model, tea.Cmd) {
	switch key {
	case "y", "Y", m.cfg.Keys.Confirm:
		onConfirm := m.scr.confirm.onConfirm
		m.scr.confirm = nil
		onConfirm()
		m.cursor = clampCursor(m.cursor, len(m.items()))
	case "n", "N", m.cfg.Keys.Cancel:
		m.scr.confirm = nil
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.closeInput()
		return m, nil
	case "tab", "down":
		m.storeField()
		m.form.index = wrapIndex(m.form.index+1, fieldCount)
		m.loadField()
		return m, nil
	case "shift+tab", "up":
		m.storeField()
		m.form.index = wrapIndex(m.form.index-1, fieldCount)
		m.loadField()
		return m, nil
	case m.cfg.Keys.Confirm:
		m.storeField()
		return m.submitAdd()
	}
	if m.form.index == fieldPriority {
		switch key {
		case "left", "h", "-":
			m.form.priority = cyclePriority(m.form.priority, -1)
		case "right", "l", "+", " ":
			m.form.priority = cyclePriority(m.form.priority, 1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitAdd() (Model, tea.Cmd) {
	var due *task.Date
	if strings.TrimSpace(m.form.due) != "" {
		d, err := task.ParseDate(m.form.due)
		if err != nil {
			m.scr.Notify(controller.Notice{Level: controller.LevelError, Text: "Due date must be YYYY-MM-DD", Transient: true})
			m.form.index = fieldDue
			m.loadField()
			return m, nil
		}
		due = &d
	}
	if _, err := m.ctrl.Add(m.form.text, due, m.form.priority); errors.Is(err, task.ErrEmptyText) {
		m.form.index = fieldText
		m.loadField()
		return m, nil
	}
	m.closeInput()
	m.cursor = 0
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.closeInput()
		return m, nil
	case m.cfg.Keys.Confirm:
		if err := m.ctrl.Edit(m.editID, m.input.Value()); errors.Is(err, task.ErrEmptyText) {
			return m, nil
		}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.form = nil
	m.editID = 0
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) storeField() {
	switch m.form.index {
	case fieldText:
		m.form.text = m.input.Value()
	case fieldDue:
		m.form.due = m.input.Value()
	}
}

func (m *Model) loadField() {
	switch m.form.index {
	case fieldText:
		m.input.Placeholder = "Task title"
		m.input.SetValue(m.form.text)
		m.input.Focus()
	case fieldDue:
		m.input.Placeholder = "Due date YYYY-MM-DD (optional)"
		m.input.SetValue(m.form.due)
		m.input.Focus()
	case fieldPriority:
		m.input.Blur()
	}
}

func cyclePriority(p task.Priority, step int) task.Priority {
	i := 0
	for j, q := range task.Priorities {
		if q == p {
			i = j
		}
	}
	return task.Priorities[wrapIndex(i+step, len(task.Priorities))]
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

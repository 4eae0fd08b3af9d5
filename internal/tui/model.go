// Package tui hosts a rating widget in a Bubble Tea program. The model
// translates key presses into element events, runs the widget's deferred
// tasks on the event loop and draws the element tree.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/starrate/internal/dom"
	"github.com/jask/starrate/internal/rating"
)

// TaskQueue hands due deferred tasks to the event loop.
// schedule.Loop implements it.
type TaskQueue interface {
	Wait() (id string, ok bool)
	Run(id string) bool
}

// Options configures the model.
type Options struct {
	Title     string
	Accent    string
	Selectors rating.Selectors
	Keys      []KeyBinding
}

type Model struct {
	widget *rating.Widget
	doc    dom.Document
	tasks  TaskQueue
	keys   *KeyRegistry
	styles styles
	sel    rating.Selectors
	title  string

	focus    int
	width    int
	height   int
	quitting bool
}

type taskDueMsg struct{ id string }

type tasksClosedMsg struct{}

// New returns a model for an initialized widget.
func New(w *rating.Widget, doc dom.Document, tasks TaskQueue, opts Options) Model {
	if opts.Selectors == (rating.Selectors{}) {
		opts.Selectors = rating.DefaultSelectors()
	}
	if len(opts.Keys) == 0 {
		opts.Keys = DefaultKeyBindings()
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Rating"
	}
	return Model{
		widget: w,
		doc:    doc,
		tasks:  tasks,
		keys:   NewKeyRegistry(opts.Keys),
		styles: newStyles(AccentColor(opts.Accent)),
		sel:    opts.Selectors,
		title:  title,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForTask(m.tasks)
}

// waitForTask blocks until the queue has a due task. Exactly one wait is
// outstanding at a time; the model re-arms it after each task.
func waitForTask(q TaskQueue) tea.Cmd {
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		id, ok := q.Wait()
		if !ok {
			return tasksClosedMsg{}
		}
		return taskDueMsg{id: id}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDueMsg:
		m.tasks.Run(msg.id)
		return m, waitForTask(m.tasks)
	case tasksClosedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// scope leaves the selection keys once a submit has started the panel
// swap.
func (m Model) scope() string {
	if m.widget.Panel() != rating.ShowingSelection {
		return scopeConfirmation
	}
	return scopeSelection
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, ok := m.keys.Action(msg, m.scope())
	if !ok {
		return m, nil
	}
	controls := m.widget.Controls()
	switch action {
	case actionQuit:
		m.quitting = true
		return m, tea.Quit
	case actionFocusPrev:
		if m.focus > 0 {
			m.focus--
		}
	case actionFocusNext:
		if m.focus < len(controls)-1 {
			m.focus++
		}
	case actionActivate:
		if m.focus < len(controls) {
			k := "Enter"
			if normalizeKey(msg.String()) == "space" {
				k = " "
			}
			controls[m.focus].Dispatch(&dom.Event{Type: dom.EventKeyPress, Key: k})
		}
	case actionRate:
		want := msg.String()
		for i, c := range controls {
			if strings.TrimSpace(c.Text()) == want {
				m.focus = i
				c.Dispatch(&dom.Event{Type: dom.EventClick})
				break
			}
		}
	case actionSubmit:
		m.widget.SubmitControl().Dispatch(&dom.Event{Type: dom.EventClick})
	}
	return m, nil
}

// Focus returns the index of the focused rating control.
func (m Model) Focus() int { return m.focus }

func (m Model) statusLine() (string, bool) {
	switch {
	case m.widget.NoticeVisible():
		return rating.NoticeText, true
	case m.widget.Panel() == rating.Transitioning:
		return "Submitting…", false
	case m.widget.Panel() == rating.ShowingConfirmation:
		return fmt.Sprintf("Rated %d out of %d", m.widget.Submitted(), rating.MaxValue), false
	case m.widget.Value() > 0:
		return fmt.Sprintf("Selected %d, press s to submit", m.widget.Value()), false
	default:
		return "Choose a rating from 1 to 5", false
	}
}

// Package rating implements the star rating widget: five rating controls,
// a submit action and a selection panel that is swapped for a
// confirmation panel once a rating is submitted.
//
// The widget owns no rendering. It mutates elements of an injected
// dom.Document and defers its two timed effects through an injected
// schedule.Scheduler, so hosts decide how the tree is drawn and how time
// passes.
package rating

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/starrate/internal/dom"
	"github.com/jask/starrate/internal/schedule"
)

const (
	// MaxValue is the highest rating a control can carry.
	MaxValue = 5

	// FadeDuration is the length of the fade-out before the panel swap
	// and of the fade-in after it.
	FadeDuration = 300 * time.Millisecond
	// NoticeDuration is how long a validation notice stays visible.
	NoticeDuration = 3 * time.Second

	NoticeText = "Please select a rating before submitting"

	ClassActive = "active"
	ClassHidden = "d-none"

	fadeOutAnimation = "fadeOut 0.3s ease-out forwards"
	fadeInAnimation  = "fadeIn 0.3s ease-in forwards"
)

// NoticeClasses are applied to the validation notice element.
var NoticeClasses = []string{"error-message", "text-danger", "m-2"}

// Panel is the state of the panel axis.
type Panel int

const (
	ShowingSelection Panel = iota
	Transitioning
	ShowingConfirmation
)

func (p Panel) String() string {
	switch p {
	case ShowingSelection:
		return "showing_selection"
	case Transitioning:
		return "transitioning"
	case ShowingConfirmation:
		return "showing_confirmation"
	default:
		return "unknown"
	}
}

// Selectors locate the elements a widget binds to.
type Selectors struct {
	SelectionPanel    string
	ConfirmationPanel string
	Submit            string
	Controls          string
	ValueSlot         string
	Group             string
}

// DefaultSelectors matches the bundled page markup.
func DefaultSelectors() Selectors {
	return Selectors{
		SelectionPanel:    "#rating-card",
		ConfirmationPanel: "#thank-you-card",
		Submit:            "#submit-rating",
		Controls:          ".rating-btn",
		ValueSlot:         "#rating-value",
		Group:             ".ratings",
	}
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

// WithSelectors overrides DefaultSelectors.
func WithSelectors(s Selectors) Option {
	return func(w *Widget) { w.sel = s }
}

// Widget is the rating view-state controller. Like the document it
// drives, it must only be used from the host's event loop.
type Widget struct {
	doc   dom.Document
	sched schedule.Scheduler
	log   *zap.Logger
	sel   Selectors

	selectionPanel    dom.Element
	confirmationPanel dom.Element
	submit            dom.Element
	valueSlot         dom.Element
	group             dom.Element
	controls          []dom.Element

	selected  int
	submitted int
	panel     Panel
	notice    dom.Element

	tasks  map[int]schedule.Task
	taskN  int
	unbind []func()
	ready  bool
	closed bool
}

// New returns a widget bound to doc. Call Init before use.
func New(doc dom.Document, sched schedule.Scheduler, opts ...Option) *Widget {
	w := &Widget{
		doc:   doc,
		sched: sched,
		log:   zap.NewNop(),
		sel:   DefaultSelectors(),
		tasks: map[int]schedule.Task{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Init locates the required elements, applies the accessibility
// attributes and binds event handlers. A missing element yields a
// *SetupError, is logged, and leaves the widget without handlers.
func (w *Widget) Init() error {
	if w.ready {
		return nil
	}
	if w.closed {
		return ErrNotReady
	}
	if err := w.locate(); err != nil {
		var se *SetupError
		if errors.As(err, &se) {
			w.log.Error("rating widget setup failed",
				zap.String("element", se.Element),
				zap.String("selector", se.Selector),
				zap.String("hint", se.Hint),
				zap.Error(err))
		}
		return err
	}
	w.setupAccessibility()
	w.bindControls()
	w.bindSubmit()
	w.ready = true
	w.log.Debug("rating widget ready", zap.Int("controls", len(w.controls)))
	return nil
}

func (w *Widget) locate() error {
	single := []struct {
		name     string
		selector string
		dst      *dom.Element
	}{
		{"rating card", w.sel.SelectionPanel, &w.selectionPanel},
		{"thank you card", w.sel.ConfirmationPanel, &w.confirmationPanel},
		{"submit button", w.sel.Submit, &w.submit},
	}
	for _, s := range single {
		el := w.doc.Find(s.selector)
		if el == nil {
			return w.missing(s.name, s.selector)
		}
		*s.dst = el
	}

	w.controls = w.doc.FindAll(w.sel.Controls)
	if len(w.controls) == 0 {
		return w.missing("rating buttons", w.sel.Controls)
	}
	if w.valueSlot = w.doc.Find(w.sel.ValueSlot); w.valueSlot == nil {
		return w.missing("rating value element", w.sel.ValueSlot)
	}
	if w.group = w.doc.Find(w.sel.Group); w.group == nil {
		return w.missing("rating group", w.sel.Group)
	}
	return nil
}

func (w *Widget) missing(name, selector string) error {
	se := &SetupError{Element: name, Selector: selector}
	sel, err := dom.ParseSelector(selector)
	if err != nil {
		return se
	}
	switch {
	case sel.ID != "":
		if hint, ok := closestName(sel.ID, w.doc.IDs()); ok {
			se.Hint = "#" + hint
		}
	case len(sel.Classes) > 0:
		if hint, ok := closestName(sel.Classes[0], w.doc.ClassNames()); ok {
			se.Hint = "." + hint
		}
	}
	return se
}

func (w *Widget) setupAccessibility() {
	for _, c := range w.controls {
		c.SetAttr("role", "radio")
		c.SetAttr("aria-checked", "false")
		c.SetAttr("aria-label", "Rate "+strings.TrimSpace(c.Text())+" out of "+strconv.Itoa(MaxValue))
		c.SetAttr("tabindex", "0")
	}
	w.group.SetAttr("role", "radiogroup")
	w.group.SetAttr("aria-label", "Rating selection")
}

func (w *Widget) bindControls() {
	for _, c := range w.controls {
		w.unbind = append(w.unbind,
			c.On(dom.EventClick, func(*dom.Event) { w.activate(c) }),
			c.On(dom.EventKeyPress, func(ev *dom.Event) {
				if ev.Key == "Enter" || ev.Key == " " {
					ev.PreventDefault()
					w.activate(c)
				}
			}),
		)
	}
}

func (w *Widget) activate(c dom.Element) {
	if err := w.Select(c); err != nil {
		w.log.Warn("rating control rejected", zap.String("text", c.Text()), zap.Error(err))
	}
}

func (w *Widget) bindSubmit() {
	w.submit.SetDisabled(true)
	w.unbind = append(w.unbind, w.submit.On(dom.EventClick, func(*dom.Event) {
		if err := w.Submit(); err != nil {
			w.log.Debug("rating submit refused", zap.Error(err))
		}
	}))
}

// Select makes control the single active rating and enables submit.
// Selecting the active control again leaves the state unchanged.
func (w *Widget) Select(control dom.Element) error {
	if !w.ready || w.closed {
		return ErrNotReady
	}
	if !w.owns(control) {
		return ErrInvalidControl
	}
	value, err := controlValue(control)
	if err != nil {
		return err
	}

	for _, c := range w.controls {
		c.RemoveClass(ClassActive)
		c.SetAttr("aria-checked", "false")
	}
	control.AddClass(ClassActive)
	control.SetAttr("aria-checked", "true")
	w.selected = value
	w.submit.SetDisabled(false)
	return nil
}

// SelectValue activates the control carrying value.
func (w *Widget) SelectValue(value int) error {
	if !w.ready || w.closed {
		return ErrNotReady
	}
	for _, c := range w.controls {
		if v, err := controlValue(c); err == nil && v == value {
			return w.Select(c)
		}
	}
	return ErrInvalidControl
}

func (w *Widget) owns(control dom.Element) bool {
	for _, c := range w.controls {
		if c == control {
			return true
		}
	}
	return false
}

func controlValue(c dom.Element) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || v < 1 || v > MaxValue {
		return 0, ErrInvalidControl
	}
	return v, nil
}

// Submit confirms the current selection. Without one it shows the
// validation notice and returns ErrNoSelection. Once the panel swap has
// started further submits do nothing.
func (w *Widget) Submit() error {
	if !w.ready || w.closed {
		return ErrNotReady
	}
	if w.selected == 0 {
		w.showNotice()
		return ErrNoSelection
	}
	if w.panel != ShowingSelection {
		return nil
	}

	w.submitted = w.selected
	w.valueSlot.SetText(strconv.Itoa(w.submitted))
	w.selectionPanel.SetStyle("animation", fadeOutAnimation)
	w.panel = Transitioning
	w.after(FadeDuration, w.swapPanels)
	return nil
}

func (w *Widget) swapPanels() {
	w.selectionPanel.AddClass(ClassHidden)
	w.confirmationPanel.RemoveClass(ClassHidden)
	w.confirmationPanel.SetStyle("animation", fadeInAnimation)
	w.panel = ShowingConfirmation
	w.log.Debug("rating submitted", zap.Int("value", w.submitted))
}

func (w *Widget) showNotice() {
	if w.notice != nil {
		return
	}
	n := w.doc.CreateElement("div")
	n.AddClass(NoticeClasses...)
	n.SetAttr("role", "alert")
	n.SetText(NoticeText)

	parent := w.submit.Parent()
	if parent == nil {
		w.log.Warn("submit button is detached; notice not shown")
		return
	}
	if err := parent.InsertBefore(n, w.submit); err != nil {
		w.log.Warn("insert notice", zap.Error(err))
		return
	}
	w.notice = n
	w.after(NoticeDuration, func() {
		n.Remove()
		if w.notice == n {
			w.notice = nil
		}
	})
}

// after schedules fn and makes it a no-op once the widget is closed.
func (w *Widget) after(d time.Duration, fn func()) {
	w.taskN++
	id := w.taskN
	w.tasks[id] = w.sched.After(d, func() {
		delete(w.tasks, id)
		if w.closed {
			return
		}
		fn()
	})
}

// Close cancels pending effects and unbinds all handlers. The element
// tree is left as it is.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for id, t := range w.tasks {
		t.Cancel()
		delete(w.tasks, id)
	}
	for _, off := range w.unbind {
		off()
	}
	w.unbind = nil
}

// Value returns the selected rating, or 0 if none has been chosen.
func (w *Widget) Value() int { return w.selected }

// Submitted returns the rating shown on the confirmation panel, or 0
// before a successful submit.
func (w *Widget) Submitted() int { return w.submitted }

// Panel returns the state of the panel axis.
func (w *Widget) Panel() Panel { return w.panel }

// NoticeVisible reports whether the validation notice is shown.
func (w *Widget) NoticeVisible() bool { return w.notice != nil }

// Controls returns the bound rating controls in document order.
func (w *Widget) Controls() []dom.Element { return w.controls }

// SubmitControl returns the bound submit element.
func (w *Widget) SubmitControl() dom.Element { return w.submit }

// Group returns the element wrapping the rating controls.
func (w *Widget) Group() dom.Element { return w.group }

// Package dom is a small element tree with attribute, class, style and
// event support. Widgets depend on the Document and Element interfaces;
// Tree and Node are the in-memory implementation used by hosts and tests.
package dom

// Handler receives events dispatched to an element.
type Handler func(ev *Event)

// Event is delivered to handlers registered with Element.On.
type Event struct {
	Type   string
	Key    string // set for keypress events, e.g. "Enter" or " "
	Target Element

	defaultPrevented bool
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Common event types.
const (
	EventClick    = "click"
	EventKeyPress = "keypress"
)

// Element is a single node of the tree that can be mutated and observed.
type Element interface {
	Tag() string
	ID() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)

	Classes() []string
	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)

	Text() string
	SetText(text string)

	Style(prop string) string
	SetStyle(prop, value string)

	Disabled() bool
	SetDisabled(disabled bool)

	Parent() Element
	Children() []Element
	InsertBefore(child, ref Element) error
	Remove()

	// On subscribes h to events of the given type and returns a function
	// that removes the subscription.
	On(event string, h Handler) (off func())
	Dispatch(ev *Event)
}

// Document is a set of referenceable elements.
type Document interface {
	// Find returns the first attached element matching selector, or nil.
	Find(selector string) Element
	// FindAll returns every attached element matching selector in
	// document order.
	FindAll(selector string) []Element
	// CreateElement returns a new detached element owned by the document.
	CreateElement(tag string) Element
	// IDs lists the ids of attached elements in document order.
	IDs() []string
	// ClassNames lists the distinct class names of attached elements.
	ClassNames() []string
}

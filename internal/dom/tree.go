package dom

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrForeignNode is returned when a node from another tree, or a
	// non-Node Element, is passed to a tree operation.
	ErrForeignNode = errors.New("node does not belong to this tree")
	// ErrNotChild is returned by InsertBefore when ref is not a child of
	// the receiver.
	ErrNotChild = errors.New("reference node is not a child")
	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = errors.New("node cannot contain itself")
)

type nodeKind int

const (
	elementNode nodeKind = iota
	textNode
)

type subscription struct {
	id int
	h  Handler
}

// Node is an element or text node of a Tree. Only element nodes are ever
// handed out as Elements.
type Node struct {
	kind     nodeKind
	tree     *Tree
	tag      string
	data     string // text nodes only
	attrs    map[string]string
	style    map[string]string
	parent   *Node
	children []*Node
	handlers map[string][]subscription
}

// Tree is an in-memory Document. It is not safe for concurrent use; like
// a browser document it belongs to a single event loop.
type Tree struct {
	root   *Node
	nextID int
}

// NewTree returns an empty tree with a "#document" root element.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.newElement("#document")
	return t
}

// Root returns the document root. Elements are attached once they are
// descendants of the root.
func (t *Tree) Root() *Node { return t.root }

func (t *Tree) newElement(tag string) *Node {
	return &Node{
		kind:  elementNode,
		tree:  t,
		tag:   strings.ToLower(tag),
		attrs: map[string]string{},
		style: map[string]string{},
	}
}

// NewElement is CreateElement with a concrete return type.
func (t *Tree) NewElement(tag string) *Node { return t.newElement(tag) }

// CreateElement implements Document.
func (t *Tree) CreateElement(tag string) Element { return t.newElement(tag) }

// Find implements Document.
func (t *Tree) Find(selector string) Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var found *Node
	t.root.walk(func(n *Node) bool {
		if n != t.root && sel.Matches(n) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

// FindAll implements Document.
func (t *Tree) FindAll(selector string) []Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var out []Element
	t.root.walk(func(n *Node) bool {
		if n != t.root && sel.Matches(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// IDs implements Document.
func (t *Tree) IDs() []string {
	var out []string
	t.root.walk(func(n *Node) bool {
		if id := n.ID(); id != "" {
			out = append(out, id)
		}
		return true
	})
	return out
}

// ClassNames implements Document.
func (t *Tree) ClassNames() []string {
	seen := map[string]struct{}{}
	t.root.walk(func(n *Node) bool {
		for _, c := range n.Classes() {
			seen[c] = struct{}{}
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// walk visits element nodes depth first in document order until fn
// returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if n.kind != elementNode {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) Tag() string { return n.tag }

func (n *Node) ID() string { return n.attrs["id"] }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[strings.ToLower(name)]
	return v, ok
}

func (n *Node) SetAttr(name, value string) {
	n.attrs[strings.ToLower(name)] = value
}

func (n *Node) Classes() []string {
	return strings.Fields(n.attrs["class"])
}

func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.Classes(), name)
}

func (n *Node) AddClass(names ...string) {
	classes := n.Classes()
	for _, name := range names {
		if name != "" && !slices.Contains(classes, name) {
			classes = append(classes, name)
		}
	}
	n.setClasses(classes)
}

func (n *Node) RemoveClass(names ...string) {
	classes := slices.DeleteFunc(n.Classes(), func(c string) bool {
		return slices.Contains(names, c)
	})
	n.setClasses(classes)
}

func (n *Node) setClasses(classes []string) {
	if len(classes) == 0 {
		delete(n.attrs, "class")
		return
	}
	n.attrs["class"] = strings.Join(classes, " ")
}

// Text returns the concatenated text of all descendant text nodes.
func (n *Node) Text() string {
	if n.kind == textNode {
		return n.data
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(text string) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if text == "" {
		return
	}
	n.children = []*Node{{kind: textNode, tree: n.tree, data: text, parent: n}}
}

// AppendText adds a text node after the existing children.
func (n *Node) AppendText(text string) {
	n.children = append(n.children, &Node{kind: textNode, tree: n.tree, data: text, parent: n})
}

func (n *Node) Style(prop string) string {
	return n.style[strings.ToLower(prop)]
}

// SetStyle sets an inline style property; an empty value removes it.
func (n *Node) SetStyle(prop, value string) {
	prop = strings.ToLower(prop)
	if value == "" {
		delete(n.style, prop)
		return
	}
	n.style[prop] = value
}

func (n *Node) Disabled() bool {
	_, ok := n.attrs["disabled"]
	return ok
}

func (n *Node) SetDisabled(disabled bool) {
	if disabled {
		n.attrs["disabled"] = ""
		return
	}
	delete(n.attrs, "disabled")
}

func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children returns the element children of n.
func (n *Node) Children() []Element {
	out := make([]Element, 0, len(n.children))
	for _, c := range n.children {
		if c.kind == elementNode {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) error {
	if err := n.adoptable(child); err != nil {
		return err
	}
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// InsertBefore moves child in front of ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref Element) error {
	c, ok := child.(*Node)
	if !ok {
		return ErrForeignNode
	}
	if ref == nil {
		return n.AppendChild(c)
	}
	r, ok := ref.(*Node)
	if !ok || r.tree != n.tree {
		return ErrForeignNode
	}
	if r.parent != n {
		return ErrNotChild
	}
	if err := n.adoptable(c); err != nil {
		return err
	}
	if c == r {
		return nil
	}
	c.detach()
	idx := slices.Index(n.children, r)
	n.children = slices.Insert(n.children, idx, c)
	c.parent = n
	return nil
}

func (n *Node) adoptable(c *Node) error {
	if c == nil || c.tree != n.tree {
		return ErrForeignNode
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return ErrCycle
		}
	}
	return nil
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() { n.detach() }

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

// Attached reports whether n is reachable from the tree root.
func (n *Node) Attached() bool {
	for p := n; p != nil; p = p.parent {
		if p == n.tree.root {
			return true
		}
	}
	return false
}

func (n *Node) On(event string, h Handler) func() {
	if n.handlers == nil {
		n.handlers = map[string][]subscription{}
	}
	n.tree.nextID++
	id := n.tree.nextID
	n.handlers[event] = append(n.handlers[event], subscription{id: id, h: h})
	return func() {
		n.handlers[event] = slices.DeleteFunc(n.handlers[event], func(s subscription) bool {
			return s.id == id
		})
	}
}

// Dispatch runs the handlers subscribed to ev.Type on n in subscription
// order. Handlers added or removed while dispatching take effect on the
// next dispatch.
func (n *Node) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = n
	}
	subs := slices.Clone(n.handlers[ev.Type])
	for _, s := range subs {
		s.h(ev)
	}
}

// HandlerCount returns the number of handlers subscribed to event.
func (n *Node) HandlerCount(event string) int {
	return len(n.handlers[event])
}

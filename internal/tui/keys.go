package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeAll          = "*"
	scopeSelection    = "selection"
	scopeConfirmation = "confirmation"
)

const (
	actionQuit      = "quit"
	actionFocusPrev = "focus-prev"
	actionFocusNext = "focus-next"
	actionActivate  = "activate"
	actionRate      = "rate"
	actionSubmit    = "submit"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"h", "left"}, Action: actionFocusPrev, Description: "prev", Scopes: []string{scopeSelection}},
		{Keys: []string{"l", "right"}, Action: actionFocusNext, Description: "next", Scopes: []string{scopeSelection}},
		{Keys: []string{"enter", "space"}, Action: actionActivate, Description: "choose", Scopes: []string{scopeSelection}},
		{Keys: []string{"1-5", "1", "2", "3", "4", "5"}, Action: actionRate, Description: "rate", Scopes: []string{scopeSelection}},
		{Keys: []string{"s"}, Action: actionSubmit, Description: "submit", Scopes: []string{scopeSelection}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeAll}},
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the first action bound to msg in scope.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) (string, bool) {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	got, ok := r.Action(msg, scope)
	return ok && got == action
}

// HelpBindings converts the scope's bindings for the footer. The first key
// of each binding is its help label.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	for _, b := range r.BindingsForScope(scope) {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)))
	}
	return out
}

func normalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == scopeAll || s == scope {
			return true
		}
	}
	return false
}

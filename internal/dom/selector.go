package dom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadSelector is returned for selectors outside the supported subset.
var ErrBadSelector = errors.New("unsupported selector")

// Selector is a compound simple selector: an optional tag, an optional
// id and any number of classes, e.g. "button#submit.btn.primary".
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

// ParseSelector parses the subset of CSS selectors understood by Tree.
// Combinators, attribute selectors and pseudo-classes are rejected.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, fmt.Errorf("%w: empty", ErrBadSelector)
	}
	if strings.ContainsAny(s, " >+~[]:*,") {
		return Selector{}, fmt.Errorf("%w: %q", ErrBadSelector, s)
	}

	var sel Selector
	i := 0
	for i < len(s) && s[i] != '#' && s[i] != '.' {
		i++
	}
	sel.Tag = strings.ToLower(s[:i])

	for i < len(s) {
		kind := s[i]
		j := i + 1
		for j < len(s) && s[j] != '#' && s[j] != '.' {
			j++
		}
		name := s[i+1 : j]
		if name == "" {
			return Selector{}, fmt.Errorf("%w: %q", ErrBadSelector, s)
		}
		switch kind {
		case '#':
			if sel.ID != "" {
				return Selector{}, fmt.Errorf("%w: %q has two ids", ErrBadSelector, s)
			}
			sel.ID = name
		case '.':
			sel.Classes = append(sel.Classes, name)
		}
		i = j
	}
	return sel, nil
}

// Matches reports whether el satisfies the selector.
func (sel Selector) Matches(el Element) bool {
	if el == nil {
		return false
	}
	if sel.Tag != "" && sel.Tag != el.Tag() {
		return false
	}
	if sel.ID != "" && sel.ID != el.ID() {
		return false
	}
	for _, c := range sel.Classes {
		if !el.HasClass(c) {
			return false
		}
	}
	return true
}

func (sel Selector) String() string {
	var b strings.Builder
	b.WriteString(sel.Tag)
	if sel.ID != "" {
		b.WriteByte('#')
		b.WriteString(sel.ID)
	}
	for _, c := range sel.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	return b.String()
}

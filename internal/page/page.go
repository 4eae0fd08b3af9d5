// Package page loads the widget markup into a dom.Tree.
package page

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/jask/starrate/internal/dom"
)

//go:embed default.html
var defaultMarkup string

// DefaultMarkup returns the bundled rating page.
func DefaultMarkup() string { return defaultMarkup }

// Default parses the bundled rating page.
func Default() (*dom.Tree, error) {
	return Parse(strings.NewReader(defaultMarkup))
}

// Load parses the markup at path, or the bundled page when path is empty.
func Load(path string) (*dom.Tree, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", path, err)
	}
	return t, nil
}

// Parse reads HTML into a tree. Element names, attributes and text are
// kept; comments, doctype, script and style contents are dropped.
// Whitespace runs in text collapse to one space and whitespace-only text
// is dropped.
func Parse(r io.Reader) (*dom.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	t := dom.NewTree()
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := convert(t, t.Root(), c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func convert(t *dom.Tree, parent *dom.Node, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		if text := collapseSpace(n.Data); text != "" {
			parent.AppendText(text)
		}
		return nil
	case html.ElementNode:
	default:
		return nil
	}
	if n.Data == "script" || n.Data == "style" {
		return nil
	}

	el := t.NewElement(n.Data)
	for _, a := range n.Attr {
		if a.Key == "style" {
			for prop, val := range parseStyle(a.Val) {
				el.SetStyle(prop, val)
			}
			continue
		}
		el.SetAttr(a.Key, a.Val)
	}
	if err := parent.AppendChild(el); err != nil {
		return fmt.Errorf("append <%s>: %w", n.Data, err)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := convert(t, el, c); err != nil {
			return err
		}
	}
	return nil
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	fields := strings.Fields(s)
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// parseStyle splits an inline style attribute into properties.
func parseStyle(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			out[prop] = val
		}
	}
	return out
}

// Title returns the text of the document <title>, if any.
func Title(t *dom.Tree) string {
	el := t.Find("title")
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

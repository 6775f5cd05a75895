package libevents

import (
	"strings"

	"golang.org/x/net/html"
)

type (
	// Element is what the delegation layer needs from a view's root element.
	Element interface {
		AddEventListener(eventType string, listener *DOMListener)
		RemoveEventListener(eventType string, listener *DOMListener)
		// ParentElement returns the parent element, or nil at the top of the tree.
		ParentElement() Element
		// Matches reports whether the element matches a CSS selector.
		Matches(selector string) bool
		// QuerySelectorAll returns the descendants matching a CSS selector.
		QuerySelectorAll(selector string) []Element
		// Remove detaches the element from its parent.
		Remove()
	}

	// HTMLElement is an Element backed by an x/net/html element node. Elements of one
	// Document are canonical: a node always maps to the same *HTMLElement.
	HTMLElement struct {
		doc       *Document
		node      *html.Node
		listeners *nativeListeners
	}
)

// Node returns the underlying html node.
func (el *HTMLElement) Node() *html.Node {
	return el.node
}

// Document returns the document owning el.
func (el *HTMLElement) Document() *Document {
	return el.doc
}

// TagName returns the upper-case tag name.
func (el *HTMLElement) TagName() string {
	return strings.ToUpper(el.node.Data)
}

func (el *HTMLElement) ID() string {
	return el.GetAttribute("id")
}

func (el *HTMLElement) ClassName() string {
	return el.GetAttribute("class")
}

// GetAttribute returns the value of the named attribute, or "" when absent.
func (el *HTMLElement) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, attr := range el.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// HasAttribute reports whether the named attribute is set.
func (el *HTMLElement) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, attr := range el.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return true
		}
	}
	return false
}

// SetAttribute sets or replaces the named attribute.
func (el *HTMLElement) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, attr := range el.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			el.node.Attr[i].Val = value
			return
		}
	}
	el.node.Attr = append(el.node.Attr, html.Attribute{Key: name, Val: value})
}

// InnerHTML renders the children of el.
func (el *HTMLElement) InnerHTML() string {
	var b strings.Builder
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// SetInnerHTML replaces the children of el with the parsed fragment.
func (el *HTMLElement) SetInnerHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), el.node)
	if err != nil {
		return err
	}
	for c := el.node.FirstChild; c != nil; {
		next := c.NextSibling
		el.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		el.node.AppendChild(n)
	}
	return nil
}

// AppendChild moves child to the end of el's children.
func (el *HTMLElement) AppendChild(child *HTMLElement) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	el.node.AppendChild(child.node)
}

// Children returns the element children of el.
func (el *HTMLElement) Children() []*HTMLElement {
	var out []*HTMLElement
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, el.doc.wrap(c))
		}
	}
	return out
}

func (el *HTMLElement) Remove() {
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
}

// Release detaches el and drops it and its descendants from the document index. See
// Document.Release.
func (el *HTMLElement) Release() {
	el.doc.Release(el)
}

func (el *HTMLElement) ParentElement() Element {
	parent := el.parent()
	if parent == nil {
		return nil
	}
	return parent
}

func (el *HTMLElement) parent() *HTMLElement {
	p := el.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return el.doc.wrap(p)
}

func (el *HTMLElement) Matches(selector string) bool {
	sel, err := el.doc.compile(selector)
	if err != nil {
		return false
	}
	return sel.Match(el.node)
}

// QuerySelector returns the first descendant matching selector, or nil.
func (el *HTMLElement) QuerySelector(selector string) *HTMLElement {
	return el.doc.query(el.node, selector)
}

func (el *HTMLElement) QuerySelectorAll(selector string) []Element {
	matches := el.doc.queryAll(el.node, selector)
	out := make([]Element, 0, len(matches))
	for _, m := range matches {
		out = append(out, m)
	}
	return out
}

func (el *HTMLElement) AddEventListener(eventType string, listener *DOMListener) {
	el.listeners.On(eventType, listener)
}

func (el *HTMLElement) RemoveEventListener(eventType string, listener *DOMListener) {
	el.listeners.Off(eventType, listener)
}

// ListenerCount returns the number of native listeners el has for eventType.
func (el *HTMLElement) ListenerCount(eventType string) int {
	return el.listeners.Count(eventType)
}

// DispatchEvent runs the listeners of el and, when ev bubbles, those of its ancestors.
// It returns false when a listener prevented the default action of a cancelable event.
func (el *HTMLElement) DispatchEvent(ev *DOMEvent) bool {
	ev.Target = el

	for cur := el; cur != nil; cur = cur.parent() {
		ev.CurrentTarget = cur
		cur.listeners.Emit(ev)
		if !ev.Bubbles || ev.propagationStopped {
			break
		}
	}
	ev.CurrentTarget = nil

	return !ev.defaultPrevented
}

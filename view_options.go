package libevents

import (
	"sort"
)

const defaultTagName = "div"

type (
	// ViewOption configures a View.
	ViewOption func(*viewConfig)

	viewConfig struct {
		element    Element
		document   *Document
		tagName    string
		id         string
		className  string
		attributes map[string]string
		events     DOMEventsMap
		methods    map[string]DOMHandlerFunc
		model      Emitter
		collection Emitter
		initialize func(v *View)
		render     func(v *View)
		logger     Logger
	}
)

func defaultViewConfig() viewConfig {
	return viewConfig{
		tagName: defaultTagName,
		logger:  defaultLogger(),
	}
}

// buildElement creates the root element in the configured document. Attributes go
// first so id and class name win over them.
func (c viewConfig) buildElement() Element {
	doc := c.document
	if doc == nil {
		doc = NewDocument(WithDocumentLogger(c.logger))
	}
	el := doc.CreateElement(c.tagName)

	names := make([]string, 0, len(c.attributes))
	for name := range c.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el.SetAttribute(name, c.attributes[name])
	}

	if c.id != "" {
		el.SetAttribute("id", c.id)
	}
	if c.className != "" {
		el.SetAttribute("class", c.className)
	}
	return el
}

// WithElement uses el as the root element instead of building one.
func WithElement(el Element) ViewOption {
	return func(c *viewConfig) {
		c.element = el
	}
}

// WithDocument sets the document the root element is created in.
func WithDocument(doc *Document) ViewOption {
	return func(c *viewConfig) {
		c.document = doc
	}
}

func WithTagName(tag string) ViewOption {
	return func(c *viewConfig) {
		if tag != "" {
			c.tagName = tag
		}
	}
}

func WithID(id string) ViewOption {
	return func(c *viewConfig) {
		c.id = id
	}
}

func WithClassName(className string) ViewOption {
	return func(c *viewConfig) {
		c.className = className
	}
}

// WithAttributes sets attributes of the built root element.
func WithAttributes(attributes map[string]string) ViewOption {
	return func(c *viewConfig) {
		c.attributes = attributes
	}
}

// WithEvents declares the events map delegated on construction and by
// DelegateEvents(nil).
func WithEvents(events DOMEventsMap) ViewOption {
	return func(c *viewConfig) {
		c.events = events
	}
}

// WithMethods defines methods for method-name handlers.
func WithMethods(methods map[string]DOMHandlerFunc) ViewOption {
	return func(c *viewConfig) {
		c.methods = methods
	}
}

func WithModel(model Emitter) ViewOption {
	return func(c *viewConfig) {
		c.model = model
	}
}

func WithCollection(collection Emitter) ViewOption {
	return func(c *viewConfig) {
		c.collection = collection
	}
}

// WithInitialize runs fn at the end of NewView.
func WithInitialize(fn func(v *View)) ViewOption {
	return func(c *viewConfig) {
		c.initialize = fn
	}
}

// WithRender sets the hook run by Render.
func WithRender(fn func(v *View)) ViewOption {
	return func(c *viewConfig) {
		c.render = fn
	}
}

func WithLogger(l Logger) ViewOption {
	return func(c *viewConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

package libevents

import (
	"sort"

	"github.com/google/uuid"
)

type (
	// DOMHandlerFunc handles a delegated native event on behalf of a view.
	DOMHandlerFunc func(v *View, ev *DOMEvent)

	// DOMHandler is the value of a declared events map entry: either a function or the
	// name of a method defined on the view.
	DOMHandler struct {
		fn     DOMHandlerFunc
		method string
	}

	// DOMEventsMap maps "eventType selector" keys to handlers. A key without a selector
	// binds to the view's root element itself.
	DOMEventsMap map[string]DOMHandler

	// View owns a root element and delegates native events of its subtree to handlers.
	// It embeds Events, so it can emit events and listen to its model and collection.
	View struct {
		Events

		cid      string
		el       Element
		document *Document
		// ownsElement is set while el is the element NewView built.
		ownsElement bool

		declared  DOMEventsMap
		methods   map[string]DOMHandlerFunc
		domEvents []*delegatedBinding

		model      Emitter
		collection Emitter

		render func(v *View)
		logger Logger
	}
)

// Handle returns a DOMHandler running fn.
func Handle(fn DOMHandlerFunc) DOMHandler {
	return DOMHandler{fn: fn}
}

// Method returns a DOMHandler resolved by name against the view's methods when the
// events are delegated.
func Method(name string) DOMHandler {
	return DOMHandler{method: name}
}

// MethodName returns the method name of h, or "" when h holds a function.
func (h DOMHandler) MethodName() string {
	return h.method
}

// NewView creates a view. Without WithElement the view builds its own element from the
// tag name, attributes, id and class name options. The declared events are delegated
// before the initialize hook runs.
func NewView(opts ...ViewOption) *View {
	config := defaultViewConfig()
	for _, opt := range opts {
		opt(&config)
	}

	v := &View{
		cid:        uuid.NewString(),
		declared:   config.events,
		methods:    make(map[string]DOMHandlerFunc, len(config.methods)),
		model:      config.model,
		collection: config.collection,
		render:     config.render,
	}
	v.logger = config.logger.WithField("view", v.cid)

	for name, fn := range config.methods {
		v.methods[name] = fn
	}

	el := config.element
	if el == nil {
		el = config.buildElement()
	}
	v.adopt(el)
	v.ownsElement = config.element == nil
	if v.document == nil {
		v.document = config.document
	}

	if err := v.DelegateEvents(nil); err != nil {
		v.logger.Warnf("cannot delegate declared events: %s", err)
	}

	if config.initialize != nil {
		config.initialize(v)
	}

	return v
}

// CID returns the client id generated for the view.
func (v *View) CID() string {
	return v.cid
}

// El returns the root element.
func (v *View) El() Element {
	return v.el
}

// Document returns the document the view builds elements in, nil when its element was
// supplied from elsewhere.
func (v *View) Document() *Document {
	return v.document
}

func (v *View) Model() Emitter {
	return v.model
}

func (v *View) Collection() Emitter {
	return v.collection
}

// EventsMap returns the declared events map.
func (v *View) EventsMap() DOMEventsMap {
	return v.declared
}

// DefineMethod makes fn available to method-name handlers.
func (v *View) DefineMethod(name string, fn DOMHandlerFunc) *View {
	if fn == nil {
		delete(v.methods, name)
		return v
	}
	v.methods[name] = fn
	return v
}

// Method looks up a method defined on the view.
func (v *View) Method(name string) (DOMHandlerFunc, bool) {
	fn, ok := v.methods[name]
	return fn, ok
}

// Find returns the elements below the root element matching selector.
func (v *View) Find(selector string) []Element {
	if v.el == nil {
		return nil
	}
	return v.el.QuerySelectorAll(selector)
}

// Render runs the render hook set with WithRender and returns the view.
func (v *View) Render() *View {
	if v.render != nil {
		v.render(v)
	}
	return v
}

// SetElement undelegates every native binding from the current element and switches
// the view to el. Declared events are not delegated again; call DelegateEvents.
func (v *View) SetElement(el Element) *View {
	v.UndelegateEvents()
	v.adopt(el)
	v.ownsElement = false
	return v
}

// Remove undelegates the view's bindings, detaches its element from the tree and stops
// listening to every emitter. An element the view built itself is also released from
// its document.
func (v *View) Remove() *View {
	v.UndelegateEvents()
	if h, ok := v.el.(*HTMLElement); ok && h != nil && v.ownsElement {
		h.Release()
	} else if v.el != nil {
		v.el.Remove()
	}
	v.StopListening(nil, "", nil)
	return v
}

func (v *View) adopt(el Element) {
	v.el = el
	if h, ok := el.(*HTMLElement); ok && h != nil {
		v.document = h.Document()
	}
}

func (v *View) resolve(h DOMHandler) DOMHandlerFunc {
	if h.fn != nil {
		return h.fn
	}
	if h.method == "" {
		return nil
	}
	return v.methods[h.method]
}

func sortedKeys(m DOMEventsMap) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

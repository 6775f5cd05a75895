package libevents

import (
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultSelectorCacheSize = 256

type (
	// DocumentOption configures a Document.
	DocumentOption func(*documentConfig)

	documentConfig struct {
		selectorCacheSize int
		logger            Logger
	}

	// Document is an HTML tree whose elements can carry native listeners. It is the
	// default Element provider for views.
	//
	// The document indexes every element it hands out until the element is released.
	// Detaching a node does not drop it from the index; call Release on subtrees that
	// are discarded.
	Document struct {
		root      *html.Node
		logger    Logger
		selectors *lru.Cache[string, cascadia.Selector]

		mu       sync.Mutex
		elements map[*html.Node]*HTMLElement
	}
)

func defaultDocumentConfig() documentConfig {
	return documentConfig{
		selectorCacheSize: defaultSelectorCacheSize,
		logger:            defaultLogger(),
	}
}

// WithSelectorCacheSize sets how many compiled selectors are kept.
func WithSelectorCacheSize(size int) DocumentOption {
	return func(c *documentConfig) {
		if size > 0 {
			c.selectorCacheSize = size
		}
	}
}

// WithDocumentLogger sets the document logger.
func WithDocumentLogger(l Logger) DocumentOption {
	return func(c *documentConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewDocument returns an empty document with html, head and body elements.
func NewDocument(opts ...DocumentOption) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := newElementNode("html")
	htmlNode.AppendChild(newElementNode("head"))
	htmlNode.AppendChild(newElementNode("body"))
	root.AppendChild(htmlNode)

	return newDocument(root, opts...)
}

// ParseDocument parses an HTML document from r.
func ParseDocument(r io.Reader, opts ...DocumentOption) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse document")
	}
	return newDocument(root, opts...), nil
}

func newDocument(root *html.Node, opts ...DocumentOption) *Document {
	config := defaultDocumentConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// lru.New only fails on a non-positive size, which the options rule out.
	selectors, _ := lru.New[string, cascadia.Selector](config.selectorCacheSize)

	return &Document{
		root:      root,
		logger:    config.logger.WithField("component", "document"),
		selectors: selectors,
		elements:  make(map[*html.Node]*HTMLElement),
	}
}

func newElementNode(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *HTMLElement {
	return d.wrap(newElementNode(tag))
}

// DocumentElement returns the html element.
func (d *Document) DocumentElement() *HTMLElement {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the body element, or nil when the document has none.
func (d *Document) Body() *HTMLElement {
	return d.query(d.root, "body")
}

// QuerySelector returns the first element of the document matching selector.
func (d *Document) QuerySelector(selector string) *HTMLElement {
	return d.query(d.root, selector)
}

// QuerySelectorAll returns every element of the document matching selector.
func (d *Document) QuerySelectorAll(selector string) []*HTMLElement {
	return d.queryAll(d.root, selector)
}

// Wrap returns the element for n, which must belong to this document's tree or be
// detached.
func (d *Document) Wrap(n *html.Node) *HTMLElement {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) wrap(n *html.Node) *HTMLElement {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &HTMLElement{doc: d, node: n, listeners: newNativeListeners()}
	d.elements[n] = el
	return el
}

// Release detaches el and forgets el and every indexed element below it. Their native
// listeners are dropped, and a later lookup of one of their nodes returns a new element.
func (d *Document) Release(el *HTMLElement) {
	if el == nil || el.doc != d {
		return
	}
	el.Remove()

	d.mu.Lock()
	var released []*HTMLElement
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if indexed, ok := d.elements[n]; ok {
			released = append(released, indexed)
			delete(d.elements, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el.node)
	d.mu.Unlock()

	for _, r := range released {
		r.listeners.Close()
	}
	d.logger.Debugf("released %d elements", len(released))
}

func (d *Document) query(n *html.Node, selector string) *HTMLElement {
	sel, err := d.compile(selector)
	if err != nil {
		return nil
	}
	match := cascadia.Query(n, sel)
	if match == nil {
		return nil
	}
	return d.wrap(match)
}

func (d *Document) queryAll(n *html.Node, selector string) []*HTMLElement {
	sel, err := d.compile(selector)
	if err != nil {
		return nil
	}
	matches := cascadia.QueryAll(n, sel)
	out := make([]*HTMLElement, 0, len(matches))
	for _, m := range matches {
		out = append(out, d.wrap(m))
	}
	return out
}

// compile returns the compiled selector, caching it.
func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors.Get(selector); ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		err = wrapSelectorError(err, selector)
		d.logger.Warnf("%s", err)
		return nil, err
	}
	d.selectors.Add(selector, sel)
	return sel, nil
}

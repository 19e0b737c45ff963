// Package memdom is an in-memory browser for running a pageswap.Router
// without one: a Document built on an HTML node tree and a session History.
package memdom

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jackielii/pageswap"
)

var slotElements = []struct {
	slot  pageswap.Slot
	tag   atom.Atom
	class string
}{
	{pageswap.SlotHeader, atom.Header, "header-app"},
	{pageswap.SlotNav, atom.Nav, "nav-app"},
	{pageswap.SlotMain, atom.Main, "main"},
	{pageswap.SlotLoader, atom.Div, "loader"},
}

// Document implements pageswap.Document. It is safe for concurrent use;
// handlers run without the document lock held, so they may call back into
// the document.
type Document struct {
	mu      sync.Mutex
	body    *html.Node
	slots   map[pageswap.Slot]*html.Node
	title   string
	instant bool
	pending map[pageswap.Slot]chan struct{}

	nextID    int
	clickFns  map[int]func(string)
	listeners map[string]map[int]func()
}

type Option func(*Document)

// WithInstantTransitions makes every transition end as soon as it starts.
func WithInstantTransitions() Option {
	return func(d *Document) { d.instant = true }
}

// New returns a document with the header, nav, main and loader slots. The
// loader starts hidden.
func New(opts ...Option) *Document {
	d := &Document{
		body:      &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body},
		slots:     make(map[pageswap.Slot]*html.Node, len(slotElements)),
		pending:   make(map[pageswap.Slot]chan struct{}),
		clickFns:  make(map[int]func(string)),
		listeners: make(map[string]map[int]func()),
	}
	for _, se := range slotElements {
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     se.tag.String(),
			DataAtom: se.tag,
			Attr:     []html.Attribute{{Key: "class", Val: se.class}},
		}
		d.body.AppendChild(n)
		d.slots[se.slot] = n
	}
	setAttr(d.slots[pageswap.SlotLoader], "hidden", "")
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) SetHTML(slot pageswap.Slot, markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.slots[slot]
	removeChildren(n)
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// HTML renders the content of slot.
func (d *Document) HTML(slot pageswap.Slot) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var sb strings.Builder
	for c := d.slots[slot].FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// Render renders the whole body, slots included.
func (d *Document) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var sb strings.Builder
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

func (d *Document) SetHidden(slot pageswap.Slot, hidden bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if hidden {
		setAttr(d.slots[slot], "hidden", "")
	} else {
		removeAttr(d.slots[slot], "hidden")
	}
}

func (d *Document) Hidden(slot pageswap.Slot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := getAttr(d.slots[slot], "hidden")
	return ok
}

func (d *Document) SetClass(slot pageswap.Slot, class string, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	toggleClass(d.slots[slot], class, on)
}

func (d *Document) HasClass(slot pageswap.Slot, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return hasClass(d.slots[slot], class)
}

func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

func (d *Document) SetText(slot pageswap.Slot, id, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findByID(d.slots[slot], id)
	if n == nil {
		return false
	}
	removeChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return true
}

// TextByID returns the text content of the element with the given id.
func (d *Document) TextByID(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findByID(d.body, id)
	if n == nil {
		return "", false
	}
	return textContent(n), true
}

func (d *Document) Links(slot pageswap.Slot) []pageswap.Link {
	d.mu.Lock()
	defer d.mu.Unlock()
	anchors := dataLinks(d.slots[slot])
	links := make([]pageswap.Link, len(anchors))
	for i, a := range anchors {
		href, _ := getAttr(a, "href")
		links[i] = pageswap.Link{Index: i, Href: href}
	}
	return links
}

func (d *Document) SetLinkClass(slot pageswap.Slot, link pageswap.Link, class string, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	anchors := dataLinks(d.slots[slot])
	if link.Index < 0 || link.Index >= len(anchors) {
		return
	}
	toggleClass(anchors[link.Index], class, on)
}

// LinksWithClass returns the hrefs of the data-link anchors in slot that
// carry class.
func (d *Document) LinksWithClass(slot pageswap.Slot, class string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var hrefs []string
	for _, a := range dataLinks(d.slots[slot]) {
		if hasClass(a, class) {
			href, _ := getAttr(a, "href")
			hrefs = append(hrefs, href)
		}
	}
	return hrefs
}

func (d *Document) TransitionEnd(slot pageswap.Slot) <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan struct{})
	if d.instant {
		close(ch)
		return ch
	}
	if prev, ok := d.pending[slot]; ok {
		close(prev)
	}
	d.pending[slot] = ch
	return ch
}

// EndTransition fires the pending transition end on slot. It reports
// whether anyone was waiting for it.
func (d *Document) EndTransition(slot pageswap.Slot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch, ok := d.pending[slot]
	if ok {
		close(ch)
		delete(d.pending, slot)
	}
	return ok
}

func (d *Document) OnLinkClick(fn func(href string)) (stop func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.clickFns[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.clickFns, id)
	}
}

// AddListener registers a click listener on the element with the given id.
// The element does not have to exist yet.
func (d *Document) AddListener(id string, fn func()) (remove func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lid := d.nextID
	d.nextID++
	if d.listeners[id] == nil {
		d.listeners[id] = make(map[int]func())
	}
	d.listeners[id][lid] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners[id], lid)
		if len(d.listeners[id]) == 0 {
			delete(d.listeners, id)
		}
	}
}

// ListenerCount returns how many click listeners are registered on id.
func (d *Document) ListenerCount(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[id])
}

// Click dispatches a click on the element with the given id. Element
// listeners run first; if the element sits inside an a[data-link] anchor
// the link-click handlers run next with the anchor's href. It reports
// false when no element has the id.
func (d *Document) Click(id string) bool {
	d.mu.Lock()
	n := findByID(d.body, id)
	if n == nil {
		d.mu.Unlock()
		return false
	}
	d.dispatchLocked(n, id)
	return true
}

// ClickLink clicks the first data-link anchor whose href is href.
func (d *Document) ClickLink(href string) bool {
	d.mu.Lock()
	for _, a := range dataLinks(d.body) {
		if v, _ := getAttr(a, "href"); v == href {
			id, _ := getAttr(a, "id")
			d.dispatchLocked(a, id)
			return true
		}
	}
	d.mu.Unlock()
	return false
}

// dispatchLocked releases d.mu before running any handler.
func (d *Document) dispatchLocked(n *html.Node, id string) {
	var own []func()
	if id != "" {
		own = sortedFuncs(d.listeners[id])
	}
	var (
		href     string
		linkFns  []func(string)
		isAnchor bool
	)
	if a := closestDataLink(n); a != nil {
		isAnchor = true
		href, _ = getAttr(a, "href")
		keys := make([]int, 0, len(d.clickFns))
		for k := range d.clickFns {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			linkFns = append(linkFns, d.clickFns[k])
		}
	}
	d.mu.Unlock()

	for _, fn := range own {
		fn()
	}
	if isAnchor {
		for _, fn := range linkFns {
			fn(href)
		}
	}
}

func sortedFuncs(m map[int]func()) []func() {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]func(), 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

var _ pageswap.Document = (*Document)(nil)

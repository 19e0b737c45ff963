package pageswap

// Slot names one of the fixed containers of the shell.
type Slot int

const (
	SlotHeader Slot = iota
	SlotNav
	SlotMain
	SlotLoader
)

func (s Slot) String() string {
	switch s {
	case SlotHeader:
		return "header"
	case SlotNav:
		return "nav"
	case SlotMain:
		return "main"
	case SlotLoader:
		return "loader"
	}
	return "unknown"
}

// Link is a navigable anchor discovered in a slot. Index is its position in
// document order and identifies it for SetLinkClass.
type Link struct {
	Index int
	Href  string
}

// Document is the part of the page the router writes to. All slots must
// exist before the router is initialized.
type Document interface {
	// SetHTML replaces the content of slot.
	SetHTML(slot Slot, markup string)
	SetHidden(slot Slot, hidden bool)
	SetClass(slot Slot, class string, on bool)
	SetTitle(title string)
	// SetText sets the text of the element with the given id inside slot.
	// It reports false when no such element exists.
	SetText(slot Slot, id, text string) bool
	// Links returns the a[data-link] anchors inside slot.
	Links(slot Slot) []Link
	SetLinkClass(slot Slot, link Link, class string, on bool)
	// TransitionEnd returns a channel that is closed when the next CSS
	// transition on slot finishes. A nil channel never fires.
	TransitionEnd(slot Slot) <-chan struct{}
	// OnLinkClick registers fn for intercepted data-link clicks. The
	// default navigation has already been prevented when fn runs.
	OnLinkClick(fn func(href string)) (stop func())
}

// History is the browser session history.
type History interface {
	Path() string
	Push(path string)
	// OnPopState registers fn for back/forward navigations.
	OnPopState(fn func(path string)) (stop func())
}

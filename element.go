package lazyframe

// Class names written to placeholder elements.
const (
	ClassLoaded    = "lazyframe--loaded"
	ClassActivated = "lazyframe--activated"
	ClassTitle     = "lazyframe__title"
	ClassPlayBtn   = "lf-play-btn"
)

// DefaultPlayLabel is the visually hidden text of the play button.
const DefaultPlayLabel = "Play"

// Attribute is a single name/value attribute of an element.
type Attribute struct {
	Name  string
	Value string
}

// Element is a placeholder element in a host document.
// The element is owned by the document; lazyframe only mutates it through
// this interface. Elements are compared by identity, so implementations
// must return the same value for the same underlying node.
type Element interface {
	// Attributes returns the element's attributes in document order.
	Attributes() []Attribute

	// HasClass reports whether the element carries the class.
	HasClass(name string) bool

	// AddClass adds a class to the element.
	AddClass(name string)

	// HasChildren reports whether the element has child elements.
	HasChildren() bool

	// SetBackgroundImage sets the CSS background-image of the element.
	SetBackgroundImage(value string)

	// AppendPlayButton appends the play button with a visually hidden label.
	AppendPlayButton(label string)

	// AppendTitle appends a title node with the given text.
	AppendTitle(title string)

	// AppendFrame attaches an iframe built from f as the last child.
	AppendFrame(f *Frame)

	// OnClick registers a click handler.
	OnClick(fn func())

	// Click dispatches a click to every registered handler.
	Click()
}

// Document is a host document that can be queried for elements.
type Document interface {
	// QuerySelectorAll returns the elements matching a CSS selector in
	// document order.
	QuerySelectorAll(selector string) ([]Element, error)
}

// Frame is the iframe built for a placeholder. It is attached to the
// document only when the placeholder is activated.
type Frame struct {
	ID              string
	Src             string
	FrameBorder     string
	AllowFullscreen bool
	Allow           string
}

// AutoplayPermissions is the iframe allow value used when autoplay is set.
const AutoplayPermissions = "accelerometer; autoplay; encrypted-media; gyroscope; picture-in-picture"

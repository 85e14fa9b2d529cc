package bookgrab

// Layout describes the structural signature of a viewer's markup: where the
// scrollable list lives and where each unit keeps its content locator.
// Selectors are CSS selectors.
type Layout struct {
	// Frame is the iframe hosting the viewer. Empty if the viewer is
	// rendered in the top-level document.
	Frame string

	// Container is the scrollable content wrapper.
	Container string

	// List is the ordered list inside Container.
	List string

	// Unit is one item of List.
	Unit string

	// Content is the element inside a Unit that carries the locator.
	Content string

	// Attr is the attribute of Content holding the locator.
	Attr string
}

// PlayBooksLayout is the markup of the Google Play Books web reader.
var PlayBooksLayout = Layout{
	Frame:     "iframe.-gb-display",
	Container: ".cdk-virtual-scroll-content-wrapper",
	List:      "ol",
	Unit:      "li",
	Content:   "reader-rendered-page img",
	Attr:      "src",
}

package chrome

const (
	// HeaderOffset is the sticky header height subtracted from anchor
	// scroll targets.
	HeaderOffset = 80
	// ScrolledThreshold is the scroll position past which the header gets
	// its "scrolled" shadow.
	ScrolledThreshold = 50
)

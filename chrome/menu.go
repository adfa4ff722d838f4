package chrome

// Menu toggle glyphs.
const (
	IconClosed = "☰"
	IconOpen   = "✕"
)

// MenuState is everything the page renders for the small-screen menu.
type MenuState struct {
	Active       bool
	AriaExpanded string
	Icon         string
}

// Menu returns the rendered state of an open or closed menu.
func Menu(open bool) MenuState {
	if open {
		return MenuState{Active: true, AriaExpanded: "true", Icon: IconOpen}
	}
	return MenuState{AriaExpanded: "false", Icon: IconClosed}
}

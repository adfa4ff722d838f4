package chrome

import "fmt"

const (
	// RevealThreshold is the visible fraction that triggers a reveal.
	RevealThreshold = 0.15
	// RevealBottomMargin shrinks the viewport's bottom edge so elements
	// reveal slightly after they enter.
	RevealBottomMargin = 50
)

// RevealRootMargin is the observer root margin for RevealBottomMargin.
func RevealRootMargin() string {
	return fmt.Sprintf("0px 0px -%dpx 0px", RevealBottomMargin)
}

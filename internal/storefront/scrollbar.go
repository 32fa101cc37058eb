package storefront

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	thumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// scrollbar renders a vertical scroll indicator exactly viewport rows tall
// for the debug overlay's log list. A full-height thumb means the content
// fits without scrolling.
func scrollbar(content, viewport, offset int) string {
	if viewport <= 0 {
		return ""
	}
	if content <= viewport {
		return renderBar(viewport, 0, viewport)
	}

	maxOffset := content - viewport
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}

	// Thumb height is proportional to the visible share of the content.
	thumb := viewport * viewport / content
	if thumb < 1 {
		thumb = 1
	}

	maxTop := viewport - thumb
	top := 0
	if maxTop > 0 {
		top = offset * maxTop / maxOffset
	}

	return renderBar(viewport, top, thumb)
}

func renderBar(height, thumbTop, thumbHeight int) string {
	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbTop && i < thumbTop+thumbHeight {
			b.WriteString(thumbStyle.Render("┃"))
		} else {
			b.WriteString(trackStyle.Render("│"))
		}
	}
	return b.String()
}

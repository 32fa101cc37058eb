package storefront

import "github.com/rivo/uniseg"

// truncate shortens s to at most width terminal cells, grapheme-aware, and
// appends an ellipsis when anything was cut. Product names and toast
// messages may contain combining characters or emoji; byte or rune slicing
// would split them.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var out string
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		out += g.Str()
		used += w
	}
	return out + "…"
}

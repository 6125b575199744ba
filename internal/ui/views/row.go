package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grubgrip/internal/browse"
)

// RowRenderer handles rendering of restaurant rows
type RowRenderer struct {
	styles *Styles
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles) *RowRenderer {
	return &RowRenderer{styles: styles}
}

// RenderRow renders one restaurant row as two lines: the name on top,
// the opening state and the active sort metric underneath.
func (r *RowRenderer) RenderRow(row browse.Row, isSelected bool, searchQuery string) string {
	status, metric := splitSubtitle(row.Subtitle)

	nameStyle := lipgloss.NewStyle()
	highlightStyle := r.styles.Highlight
	statusStyle := r.getStatusStyle(status)
	metricStyle := r.styles.Dim
	if isSelected {
		bg := r.styles.SelectionBg.GetBackground()
		nameStyle = nameStyle.Background(bg)
		highlightStyle = highlightStyle.Background(bg)
		statusStyle = statusStyle.Background(bg)
		metricStyle = metricStyle.Background(bg)
	}

	// Restaurant name (with search highlighting if applicable)
	name := row.Title
	if strings.TrimSpace(searchQuery) != "" {
		name = r.highlightMatch(name, searchQuery, highlightStyle, nameStyle)
	} else {
		name = nameStyle.Render(name)
	}

	var parts []string
	parts = append(parts, "  ")
	parts = append(parts, statusStyle.Render(status))
	parts = append(parts, metricStyle.Render(" · "+metric))

	return name + "\n" + strings.Join(parts, "")
}

// splitSubtitle separates the opening state line from the metric line
func splitSubtitle(subtitle string) (status, metric string) {
	lines := strings.SplitN(subtitle, "\n", 2)
	status = lines[0]
	if len(lines) > 1 {
		metric = lines[1]
	}
	return status, metric
}

// getStatusStyle returns the appropriate style for an opening state
func (r *RowRenderer) getStatusStyle(status string) lipgloss.Style {
	switch status {
	case "open":
		return r.styles.StatusOpen
	case "order ahead":
		return r.styles.StatusOrderAhead
	case "closed":
		return r.styles.StatusClosed
	default:
		return r.styles.Dim
	}
}

// highlightMatch highlights the first case-insensitive occurrence of
// query within text
func (r *RowRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	start, end := matchSpan(text, query)
	if start < 0 {
		return normalStyle.Render(text)
	}

	// Split the text into parts
	before := text[:start]
	match := text[start:end]
	after := text[end:]

	// Render with appropriate styles
	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// matchSpan locates the first case-insensitive occurrence of query in
// text and returns the byte span of the match in text, or (-1, -1).
// Lowercasing can change a rune's byte length (the Kelvin sign K
// lowers from three bytes to one), so the match is found in rune space
// and mapped back to byte offsets rather than read off the lowered
// strings.
func matchSpan(text, query string) (start, end int) {
	queryRunes := []rune(strings.ToLower(query))
	if len(queryRunes) == 0 {
		return -1, -1
	}
	textRunes := []rune(strings.ToLower(text))

	index := runeIndex(textRunes, queryRunes)
	if index < 0 {
		return -1, -1
	}

	// Byte offset of each rune in the original text, plus the end
	offsets := make([]int, 0, len(textRunes)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	return offsets[index], offsets[index+len(queryRunes)]
}

// runeIndex is the rune-level strings.Index: the position of the first
// occurrence of needle in haystack, or -1.
func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

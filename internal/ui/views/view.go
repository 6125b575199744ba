package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"grubgrip/internal/browse"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Rows             []browse.Row
	Cursor           int
	ViewportOffset   int
	ViewportHeight   int
	Loading          bool
	StatusMessage    string
	StatusIsError    bool
	SearchQuery      string
	SortLabel        string
	InputMode        string
	TextInput        string
	SortOptionIndex  int
	ShowHelp         bool
	HelpScrollOffset int
	ShowInfo         bool
	InfoContent      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		rowRender:   NewRowRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	// Input line for search and sort modes
	if state.InputMode == "sort" {
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n\n")
	} else if state.InputMode == "search" {
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	// Main content
	mainContent := ""
	if len(state.Rows) == 0 {
		if state.Loading {
			// The spinner in the title already says loading; keep this short
			mainContent = r.styles.Dim.Render("Fetching restaurants...")
		} else if strings.TrimSpace(state.SearchQuery) != "" {
			mainContent = r.styles.Dim.Render("No restaurants match the search.")
		} else {
			mainContent = r.styles.Dim.Render("No restaurants. Press R to reload the feed.")
		}
	} else {
		mainContent = r.renderRowList(state)
	}
	content.WriteString(mainContent)

	if state.StatusMessage != "" {
		content.WriteString("\n")
		msgStyle := r.styles.Status
		if state.StatusIsError {
			msgStyle = msgStyle.Foreground(r.styles.StatusError.GetForeground())
		}
		content.WriteString(msgStyle.Render(state.StatusMessage))
	}

	// Help hint at the bottom when no popups are visible
	helpText := ""
	if !state.ShowHelp && !state.ShowInfo {
		helpText = r.styles.Help.Render("Press ? for help")
	}

	if helpText != "" {
		// Push the hint to the bottom of the terminal
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}

		content.WriteString("\n")
		content.WriteString(helpText)
	}

	// Apply main container style
	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitleLine builds the title with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("grubgrip")

	indicators := []string{}
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Loading", spinner[frame]))
	}
	if state.SortLabel != "" {
		indicators = append(indicators, fmt.Sprintf("Sort: %s", state.SortLabel))
	}

	rightContent := ""
	if len(indicators) > 0 {
		rightContent = r.styles.Dim.Render(strings.Join(indicators, " | "))
	}
	if strings.TrimSpace(state.SearchQuery) != "" {
		searchText := r.styles.Filter.Render(fmt.Sprintf("[Search: %s]", state.SearchQuery))
		if rightContent != "" {
			rightContent = fmt.Sprintf("%s  %s", rightContent, searchText)
		} else {
			rightContent = searchText
		}
	}

	if rightContent == "" {
		return logo
	}

	// Use a default width if state.Width is not set
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)

	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	// Not enough space, fall back to minimal spacing
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

// renderRowList renders the visible restaurant rows
func (r *Renderer) renderRowList(state ViewState) string {
	var lines []string

	end := state.ViewportOffset + state.ViewportHeight
	if end > len(state.Rows) {
		end = len(state.Rows)
	}

	if state.ViewportOffset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportOffset)))
	}

	for i := state.ViewportOffset; i < end; i++ {
		lines = append(lines, r.rowRender.RenderRow(state.Rows[i], i == state.Cursor, state.SearchQuery))
	}

	if end < len(state.Rows) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Rows)-end)))
	}

	return strings.Join(lines, "\n")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	keys := browse.Keys()
	if state.SortOptionIndex < 0 || state.SortOptionIndex >= len(keys) {
		return ""
	}
	key := keys[state.SortOptionIndex]
	sortLine := fmt.Sprintf("Sort by: %s - %s", key.Label, key.Description)
	helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
	return sortLine + "\n" + helpLine
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("GrubGrip Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Move up/down")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("g/G"), descStyle.Render("Go to top/bottom")))
	help.WriteString(fmt.Sprintf("  %s     %s\n", keyStyle.Render("Enter"), descStyle.Render("Show restaurant details")))

	help.WriteString(sectionStyle.Render("Search & Sort"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("/"), descStyle.Render("Search by restaurant name")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("s"), descStyle.Render("Change sort dimension")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("Esc"), descStyle.Render("Cancel search/sort, restore previous")))

	help.WriteString(sectionStyle.Render("Feed"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("R"), descStyle.Render("Reload the restaurant feed")))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("?"), descStyle.Render("Toggle this help")))
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("o"), descStyle.Render("Open help in pager")))
	help.WriteString(fmt.Sprintf("  %s         %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	// Split into lines for scrolling
	content := help.String()
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	// Apply scrolling
	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		if endLine > totalLines {
			endLine = totalLines
		}
		lines = lines[scrollOffset:endLine]

		// Add scroll indicators
		if scrollOffset > 0 {
			lines[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}

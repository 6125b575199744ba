package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title            lipgloss.Style
	Dim              lipgloss.Style
	Status           lipgloss.Style
	Filter           lipgloss.Style
	InfoBox          lipgloss.Style
	Help             lipgloss.Style
	Main             lipgloss.Style
	Scroll           lipgloss.Style
	Highlight        lipgloss.Style
	SelectionBg      lipgloss.Style
	StatusError      lipgloss.Style
	StatusOpen       lipgloss.Style
	StatusOrderAhead lipgloss.Style
	StatusClosed     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusOrderAhead: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusClosed:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}

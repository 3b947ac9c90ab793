package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Title     lipgloss.Style
	Text      lipgloss.Style
	Dim       lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Star      lipgloss.Style
	Mystery   lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("35"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Star:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Mystery:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("42")).Bold(true).Padding(0, 1),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                            // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("253")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")), // Comment
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Star:      lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
		Mystery:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("141")).Bold(true).Padding(0, 1),
	},
	"mono": {
		Name:      "Mono",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("250"),
		Header:    lipgloss.NewStyle().Bold(true),
		Title:     lipgloss.NewStyle().Bold(true),
		Text:      lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Bold(true),
		Success:   lipgloss.NewStyle().Bold(true),
		Warning:   lipgloss.NewStyle().Underline(true),
		Error:     lipgloss.NewStyle().Reverse(true),
		Star:      lipgloss.NewStyle(),
		Mystery:   lipgloss.NewStyle().Faint(true),
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Reverse(true).Padding(0, 1),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

// SetTheme switches themes; unknown names are ignored.
func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

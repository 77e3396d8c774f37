package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Count             *lipgloss.Style
	ColumnHeader      *lipgloss.Style
	TypedKeys         *lipgloss.Style
	PendingKeys       *lipgloss.Style
	Output            *lipgloss.Style
	Description       *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
}

// New builds the standard style set bound to r. The renderer decides the
// color profile, so pass one created for the stream the UI is drawn on.
func New(r *lipgloss.Renderer) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Styles{
		Title: ptr(
			r.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		),
		Count: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		ColumnHeader: ptr(
			r.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		),
		TypedKeys: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		PendingKeys: ptr(
			r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		),
		Output: ptr(
			r.NewStyle().Foreground(lipgloss.Color("255")),
		),
		Description: ptr(
			r.NewStyle().Foreground(lipgloss.Color("249")).Italic(true),
		),
		Info: ptr(
			r.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Footer: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Filter: ptr(
			r.NewStyle().Foreground(lipgloss.Color("249")),
		),
		FilterPrompt: ptr(
			r.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
		),
		FilterPlaceholder: ptr(
			r.NewStyle().Foreground(lipgloss.Color("241")),
		),
		Cursor: ptr(
			r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
		),
	}
}

// Default returns styles bound to the package-level renderer.
func Default() *Styles {
	return New(nil)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

package style

import "github.com/charmbracelet/lipgloss"

var colorStyles = map[Color]lipgloss.Style{
	Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	Purple: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	Grey:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// Render renders m with ANSI styling via lipgloss.
func Render(m Message) string {
	var out string
	for _, s := range m.Segments() {
		st, ok := colorStyles[s.Color]
		if !ok {
			out += s.Content
			continue
		}
		if s.Bold {
			st = st.Bold(true)
		}
		out += st.Render(s.Content)
	}
	return out
}

package tui

import "fmt"

// StatusBar renders the top status bar.
func StatusBar(engine string, visible, total int, rep string, width int) string {
	text := fmt.Sprintf("  molview - %d/%d molecules - %s via %s  ", visible, total, rep, engine)
	return statusBarStyle.Width(width).Render(text)
}

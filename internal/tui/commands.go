package tui

import "strings"

// Command represents a parsed slash command.
type Command struct {
	Name string
	Args string
}

// IsCommand reports whether search input is a command rather than a query.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// ParseCommand parses a slash command from input.
// Returns nil if the input is not a slash command.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	input = input[1:] // strip leading /
	parts := strings.SplitN(input, " ", 2)
	cmd := &Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// HelpText returns the help message for keys and slash commands.
func HelpText() string {
	return `Keys:
  type to search       Filter by name, formula (H₂O or H2O) or label
  Up/Down              Move the selection
  Enter                Load the selected molecule
  Tab / Shift+Tab      Switch focus between search and list
  Esc                  Leave the list (collapses it when the search is empty)
  Ctrl+R               Load a random molecule
  Ctrl+C               Quit

Commands:
  /help                Show this help message
  /quit, /exit         Exit molview
  /rep <mode>          Representation: ball, space, licorice
  /scale <factor>      Atom display scale (0-10)
  /bond <radius>       Bond radius
  /zoom <level>        Zoom level
  /rotate [on|off]     Toggle auto-rotation
  /random              Load a random molecule
  /load <path|url>     Load an XYZ file or URL
  /export <file.xlsx>  Export the visible molecules to a spreadsheet
  /clear               Clear the output log
  /update              Check for updates and upgrade`
}

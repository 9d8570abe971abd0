// Package input parses the board's slash-command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// ParseCommand splits a prompt line into a lower-cased command name and its
// arguments. It reports false when the line is not a slash command.
func ParseCommand(line string) (string, []string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") || fields[0] == "/" {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Rest joins the arguments from index i on, for free-text arguments.
func Rest(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}

package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

type Command struct {
	Name string
	Args string
}

type CommandDef struct {
	Name        string
	Description string
}

var AvailableCommands = []CommandDef{
	{Name: "/help", Description: "Show available commands"},
	{Name: "/accounts", Description: "List accounts, optionally filtered: /accounts team"},
	{Name: "/projects", Description: "Show the projects of an account: /projects team-alpha"},
	{Name: "/clear", Description: "Clear the screen"},
	{Name: "/exit", Description: "Quit"},
}

func CommandNames() []string {
	names := make([]string, len(AvailableCommands))
	for i, cmd := range AvailableCommands {
		names[i] = cmd.Name
	}
	return names
}

func ParseCommand(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{}, false
	}
	name, args, _ := strings.Cut(input, " ")
	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}, true
}

func PrintCommands() {
	pterm.Println(pterm.Gray("Commands:"))
	for _, cmd := range AvailableCommands {
		pterm.Println(pterm.Cyan("  "+cmd.Name) + pterm.Gray("  "+cmd.Description))
	}
	pterm.Println()
}

func ClearScreen() {
	pterm.Print("\033[H\033[2J")
}

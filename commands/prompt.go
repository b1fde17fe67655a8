package commands

import (
	"bufio"
	"fmt"
	"strings"
)

// Confirm asks a yes/no question on the App's streams. It returns true
// without prompting when --yes is set.
func (a *App) Confirm(question string) bool {
	if a.Yes {
		return true
	}
	reader := bufio.NewReader(a.In)
	for {
		fmt.Fprintf(a.Out, "%s [y/N]: ", question)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		}
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// printMarkdown renders markdown for the terminal. When stdout is not a
// terminal, or rendering fails, the raw markdown is printed instead so
// pipes receive clean text.
func printMarkdown(markdown string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(markdown)
		return
	}

	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// PrintJSON pretty-prints JSON data. If indentation fails, prints raw.
func PrintJSON(w io.Writer, data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err != nil {
		fmt.Fprintf(w, "%s\n", string(data))
	} else {
		fmt.Fprintln(w, prettyJSON.String())
	}
}

// ConfirmAction prompts on w and reads one line from r.
// Returns true if the user typed 'yes'.
func ConfirmAction(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)

	reader := bufio.NewReader(r)
	confirm, _ := reader.ReadString('\n')
	confirm = strings.TrimSpace(confirm)

	return confirm == "yes"
}

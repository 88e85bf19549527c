package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/offtimer/offtimer/internal/schedule"
)

// stdinPrompter asks for missing parameters on the terminal.
type stdinPrompter struct {
	r *bufio.Reader
}

func (p *stdinPrompter) Ask(question string) (string, error) {
	fmt.Printf("%s: ", question)
	line, err := p.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// newPrompter returns nil when prompting is disabled, which makes missing
// parameters a hard error.
func newPrompter() schedule.Prompter {
	if noPrompt {
		return nil
	}
	return &stdinPrompter{r: bufio.NewReader(os.Stdin)}
}

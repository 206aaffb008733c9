package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrNotInteractive is returned when a code is needed but nobody can type it in.
	ErrNotInteractive = errors.New("authorization code required but stdin is not a terminal; run the authorize command interactively")
	// ErrNoCode is returned when the prompt is answered with an empty line.
	ErrNoCode = errors.New("no authorization code entered")
)

// CodeProvider hands back the one-time code the user got by visiting authURL.
type CodeProvider interface {
	AuthorizationCode(ctx context.Context, authURL string) (string, error)
}

// CodeProviderFunc adapts a function to CodeProvider.
type CodeProviderFunc func(ctx context.Context, authURL string) (string, error)

func (f CodeProviderFunc) AuthorizationCode(ctx context.Context, authURL string) (string, error) {
	return f(ctx, authURL)
}

// ConsolePrompt prints the URL and reads the code from a single input line.
type ConsolePrompt struct {
	In  io.Reader
	Out io.Writer
	// IsTerminal reports whether In is interactive; nil skips the check.
	IsTerminal func() bool
}

// NewConsolePrompt prompts on stdout and reads stdin.
func NewConsolePrompt() *ConsolePrompt {
	return &ConsolePrompt{
		In:  os.Stdin,
		Out: os.Stdout,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func (p *ConsolePrompt) AuthorizationCode(ctx context.Context, authURL string) (string, error) {
	if p.IsTerminal != nil && !p.IsTerminal() {
		return "", ErrNotInteractive
	}

	fmt.Fprintf(p.Out, "Authorize this app by visiting this url: %s\n", authURL)
	fmt.Fprint(p.Out, "Enter the code from that page here: ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read authorization code: %w", err)
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", ErrNoCode
	}
	return code, nil
}

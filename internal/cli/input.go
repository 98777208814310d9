package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ReadLine prints a prompt to w and reads one trimmed line. A partial line
// before EOF is still returned.
func ReadLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadDefault is ReadLine with a fallback: an empty answer keeps current.
// Used by edit forms so the operator only retypes what changes.
func ReadDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	shown := prompt
	if current != "" {
		shown = fmt.Sprintf("%s [%s]", prompt, current)
	}
	line, err := ReadLine(reader, shown, w)
	if err != nil {
		return "", err
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

// ReadPassword reads a password from the terminal without echo.
func ReadPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm asks a yes/no question. "y"/"yes" and the Portuguese "s"/"sim"
// (any case) count as yes, anything else as no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	line, err := ReadLine(reader, prompt+" (y/n)", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}

// ParseID parses a positive record id.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}

package cli

import (
	"fmt"
	"io"
)

// Level classifies a notification, mirroring the toast levels of the web
// front end this client replaces.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notifier receives user-facing notifications. The presentation layer
// decides how to show them; the default writes tagged lines to the
// terminal.
type Notifier interface {
	Notify(level Level, message string)
}

type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(level Level, message string) {
	tag := "i"
	switch level {
	case LevelSuccess:
		tag = "ok"
	case LevelError:
		tag = "error"
	case LevelWarning:
		tag = "warn"
	}
	fmt.Fprintf(n.w, "[%s] %s\n", tag, message)
}

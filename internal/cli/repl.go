package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Classes(ctx context.Context) error
	Students(ctx context.Context) error
	Accounts(ctx context.Context) error
	Stats(ctx context.Context) error
	Me(ctx context.Context) error
	Filter(ctx context.Context) error
	ClearFilter(ctx context.Context) error
	Search(ctx context.Context, text string) error
	NewRecord(ctx context.Context, kind string) error
	EditRecord(ctx context.Context, kind, id string) error
	Delete(ctx context.Context, kind, id string) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the escolactl CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - register           — create an operator account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - classes | students | accounts
//	                       — list the matching records
//	  - stats              — show the dashboard counters
//	  - me                 — show the signed-in profile
//	  - filter             — set the student filter interactively
//	  - search <text>      — free-text student search
//	  - clear              — drop every filter criterion
//	  - new <kind>         — create a class, student or account
//	  - edit <kind> <id>   — edit an existing record
//	  - delete <kind> <id> — delete a record (students follow the
//	                         active/inactive two-step rule)
//	  - refresh            — re-fetch everything from the server
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("escola> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: classes, students, accounts, stats, me, filter, search <text>, clear, new <kind>, edit <kind> <id>, delete <kind> <id>, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "c", "classes", "turmas":
			_ = a.Classes(ctx)

		case "s", "students", "alunos":
			_ = a.Students(ctx)

		case "accounts", "users":
			_ = a.Accounts(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "me":
			_ = a.Me(ctx)

		case "filter":
			_ = a.Filter(ctx)

		case "clear":
			_ = a.ClearFilter(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "new":
			if len(args) < 1 {
				printlnFn("Usage: new <class|student|account>")
				continue
			}
			_ = a.NewRecord(ctx, args[0])

		case "edit":
			if len(args) < 2 {
				printlnFn("Usage: edit <class|student|account> <id>")
				continue
			}
			_ = a.EditRecord(ctx, args[0], args[1])

		case "delete", "del":
			if len(args) < 2 {
				printlnFn("Usage: delete <class|student|account> <id>")
				continue
			}
			_ = a.Delete(ctx, args[0], args[1])

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

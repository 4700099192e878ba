package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context, email string) error
	Resend(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
}

var _ execIface = (*App)(nil)

// runREPL starts a simple read–eval–print loop for the contacts CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Handlers share reader for their own prompts.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account, then verify the emailed code
//	  - login           authenticate
//	  - verify [email]  enter a verification code
//	  - resend [email]  request a new verification code
//	  - status          show session details
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - dashboard       show the account summary
//	  - list | l        list contacts
//	  - show [id]       show one contact
//	  - add             create a contact
//	  - edit [id]       edit a contact
//	  - status, logout, exit | quit
//
// Errors already shown by a handler (ErrReported) are not printed again;
// other handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("contacts%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: dashboard, (l)ist, show, add, edit, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, verify, resend, status, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "verify":
			cmdErr = a.Verify(ctx, arg)

		case "resend":
			cmdErr = a.Resend(ctx, arg)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show":
			cmdErr = a.Show(ctx, arg)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil && !errors.Is(cmdErr, ErrReported) {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

// Run starts the interactive session and blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	printlnFn("Contacts CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string {
		if a.isLoggedIn(ctx) {
			return " (logged in)"
		}
		return ""
	}, a.reader)
	return nil
}

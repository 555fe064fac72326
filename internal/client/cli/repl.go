package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Forgot(ctx context.Context) error
	CheckEmail(ctx context.Context) error
	Reset(ctx context.Context) error
	Contact(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. It returns on
// EOF or "exit"/"quit". Command errors are reported by the commands
// themselves and do not stop the loop.
//
//	help            show available commands
//	signup          create an account
//	login           authenticate and keep the session token
//	me              show the logged-in account
//	forgot          request a password reset email
//	reset           set a new password
//	check           check whether an email is registered
//	contact         send a contact request
//	logout          forget the session token
//	exit | quit     leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("knot (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, contact, check, forgot, reset, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, check, forgot, reset, contact, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "me":
			_ = a.Me(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "check":
			_ = a.CheckEmail(ctx)

		case "contact":
			_ = a.Contact(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

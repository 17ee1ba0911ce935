package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Register(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context) error
	DeleteUser(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the session core.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The command surface is role-gated: the user-management commands (users,
// useradd, useredit, userdel) are listed and dispatched only while the
// session holds the ADMIN role. The gate here is cosmetic — the service
// layer re-checks the live role on every call and still refuses when a
// role change lands mid-session.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ud> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn() && a.isAdmin():
				printlnFn("Available commands: whoami, users, useradd, useredit, userdel, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: whoami, logout, exit")
			default:
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "users":
			if !a.isAdmin() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.ListUsers(ctx)

		case "useradd":
			if !a.isAdmin() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.AddUser(ctx)

		case "useredit":
			if !a.isAdmin() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.EditUser(ctx)

		case "userdel":
			if !a.isAdmin() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.DeleteUser(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

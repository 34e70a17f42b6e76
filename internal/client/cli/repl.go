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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Signup(ctx context.Context) error
	RegisterUniversity(ctx context.Context) error
	Verify(ctx context.Context) error
	Scan(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Documents(ctx context.Context) error
	Attest(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the CareerKey CLI.
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
//	  - help           — show available commands
//	  - signup         — create a student account
//	  - login          — authenticate
//	  - verify         — verify a degree by its request ID
//	  - scan           — verify a degree from a QR code
//	  - exit | quit    — leave the program
//
//	Logged in (additionally, gated by role):
//	  - whoami         — show the current user and roles
//	  - dashboard      — student dashboard counters
//	  - documents      — list attestation requests
//	  - attest         — submit an attestation request
//	  - registeruni    — onboard a university (HEC only)
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ck> %s > ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, verify, scan, dashboard, documents, attest, registeruni, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, verify, scan, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "registeruni":
			_ = a.RegisterUniversity(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "scan":
			_ = a.Scan(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "documents":
			_ = a.Documents(ctx)

		case "attest":
			_ = a.Attest(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

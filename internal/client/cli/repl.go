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
	Me(ctx context.Context) error
	Subjects(ctx context.Context) error
	Batches(ctx context.Context) error
	Students(ctx context.Context) error
	Courses(ctx context.Context) error
	Universities(ctx context.Context) error
	Location(ctx context.Context) error
	CheckWindow(ctx context.Context) error
	Mark(ctx context.Context) error
	OpenWindow(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Presence CLI.
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
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - me             — show the current profile
//	  - subjects       — list subjects of my batch
//	  - batches        — list batches
//	  - students       — list students
//	  - courses        — list courses
//	  - universities   — list universities
//	  - location       — report my current location
//	  - check          — check the attendance window for a subject
//	  - mark           — capture a photo and submit attendance
//	  - window         — open/update a window (privileged)
//	  - profile        — update my profile
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("presence %s > ", statusFn()))
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
				printlnFn("Available commands: me, subjects, batches, students, courses, universities, location, check, mark, window, profile, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "subjects":
			_ = a.Subjects(ctx)

		case "batches":
			_ = a.Batches(ctx)

		case "students":
			_ = a.Students(ctx)

		case "courses":
			_ = a.Courses(ctx)

		case "universities":
			_ = a.Universities(ctx)

		case "location":
			_ = a.Location(ctx)

		case "check":
			_ = a.CheckWindow(ctx)

		case "mark":
			_ = a.Mark(ctx)

		case "window":
			_ = a.OpenWindow(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

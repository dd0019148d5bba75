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
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Sort(ctx context.Context, arg string) error
	Show(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Reset(ctx context.Context) error
	Session(ctx context.Context) error
	Forget(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login, session, forget, help, exit"
	helpLoggedIn  = "Available commands: (l)ist, page <n>, next, prev, search [term], sort [option], " +
		"show <id>, edit <id>, delete <id>, reset, logout, session, forget, help, exit"
)

// runREPL starts a simple read–eval–print loop for the console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The rest of the line is the argument. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help              show available commands
//	  - login             authenticate
//	  - session           show the session id and what it stores
//	  - forget            wipe the session, token included
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - list | l          show the current page
//	  - page <n>          jump to page n
//	  - next | prev       move one page
//	  - search [term]     filter by name or email, no term clears
//	  - sort [option]     order the list, no option shows the choices
//	  - show <id>         details of one user
//	  - edit <id>         change a user
//	  - delete <id>       remove a user
//	  - reset             drop local changes and reload
//	  - logout            log out
//
// Errors returned by handlers are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("uc %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		eof := err != nil

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			if eof {
				return
			}
			continue
		}

		if !dispatch(ctx, a, cmd, arg) || eof {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should go on.
func dispatch(ctx context.Context, a execIface, cmd, arg string) bool {
	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return true

	case "login":
		report(a.Login(ctx))
		return true

	case "session":
		report(a.Session(ctx))
		return true

	case "forget":
		report(a.Forget(ctx))
		return true

	case "exit", "quit":
		printlnFn("Bye!")
		return false
	}

	guarded, ok := guardedCommand(a, cmd)
	if !ok {
		printlnFn("Unknown command:", cmd)
		return true
	}
	if !a.isLoggedIn(ctx) {
		printlnFn("Please login first")
		return true
	}
	report(guarded(ctx, arg))
	return true
}

func guardedCommand(a execIface, cmd string) (func(context.Context, string) error, bool) {
	noArg := func(f func(context.Context) error) func(context.Context, string) error {
		return func(ctx context.Context, _ string) error { return f(ctx) }
	}

	switch cmd {
	case "l", "list":
		return noArg(a.List), true
	case "page":
		return a.Page, true
	case "next":
		return noArg(a.Next), true
	case "prev":
		return noArg(a.Prev), true
	case "search":
		return a.Search, true
	case "sort":
		return a.Sort, true
	case "show":
		return a.Show, true
	case "edit":
		return a.Edit, true
	case "delete":
		return a.Delete, true
	case "reset":
		return noArg(a.Reset), true
	case "logout":
		return noArg(a.Logout), true
	}
	return nil, false
}

func report(err error) {
	if err != nil {
		printlnFn("error:", err)
	}
}

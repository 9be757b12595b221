package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Image(ctx context.Context, id, path string) error
}

const adminOnly = "admin only"

// runREPL reads commands from in until EOF, "exit" or "quit".
//
//	Anyone:
//	  help, list, show <id>, exit | quit
//	Logged out:
//	  signup, login
//	Logged in:
//	  whoami, logout
//	Admin:
//	  new, edit <id>, delete <id>, image <id> <file>
//
// Admin commands from anyone else print "admin only". A command error is
// printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "blog %s> ", statusFn())

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText(a))

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, args[0])

		case "new", "edit", "delete", "image":
			if !a.isAdmin() {
				fmt.Fprintln(out, adminOnly)
				continue
			}
			cmdErr = runAdmin(ctx, a, cmd, args, out)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "error:", cmdErr)
		}
	}
}

func runAdmin(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "new":
		return a.New(ctx)
	case "edit", "delete":
		if len(args) != 1 {
			fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
			return nil
		}
		if cmd == "edit" {
			return a.Edit(ctx, args[0])
		}
		return a.Delete(ctx, args[0])
	default:
		if len(args) != 2 {
			fmt.Fprintln(out, "Usage: image <id> <file>")
			return nil
		}
		return a.Image(ctx, args[0], args[1])
	}
}

func helpText(a execIface) string {
	switch {
	case a.isAdmin():
		return "Available commands: (l)ist, show <id>, new, edit <id>, delete <id>, image <id> <file>, whoami, logout, exit"
	case a.isLoggedIn():
		return "Available commands: (l)ist, show <id>, whoami, logout, exit"
	default:
		return "Available commands: (l)ist, show <id>, signup, login, exit"
	}
}

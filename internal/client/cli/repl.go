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
	toasts() []string

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Where(ctx context.Context) error
	Groups(ctx context.Context, filter string) error
	Group(ctx context.Context, idOrCode string) error
	CreateGroup(ctx context.Context) error
	JoinGroup(ctx context.Context, args []string) error
	LeaveGroup(ctx context.Context, idOrCode string) error
	SetLocation(ctx context.Context, args []string) error
	Waitlist(ctx context.Context, email string) error
	ShowError(ctx context.Context) error
	DismissError(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, go <path>, where, whoami, waitlist <email>, error, dismiss, exit"
	helpLoggedIn  = "Available commands: whoami, go <path>, where, groups [creator|member], group [id|code], creategroup, " +
		"joingroup <id|code> <lat> <lon>, leavegroup <id|code>, location <lat> <lon>, waitlist <email>, error, dismiss, logout, exit"
)

// runREPL reads commands from in and dispatches them to a until EOF or
// "exit"/"quit". Handlers print their own results, so their errors are
// dropped here. After every command the latest error notice, if any, is
// printed as a toast.
//
// Prompts issued by the handlers read from the same reader, so in must be
// the App's reader and not a second buffer over stdin.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("midpoint %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "go":
			_ = a.Go(ctx, arg(args, 0))
		case "where":
			_ = a.Where(ctx)
		case "groups":
			_ = a.Groups(ctx, arg(args, 0))
		case "group":
			_ = a.Group(ctx, arg(args, 0))
		case "creategroup":
			_ = a.CreateGroup(ctx)
		case "joingroup":
			_ = a.JoinGroup(ctx, args)
		case "leavegroup":
			_ = a.LeaveGroup(ctx, arg(args, 0))
		case "location":
			_ = a.SetLocation(ctx, args)
		case "waitlist":
			_ = a.Waitlist(ctx, arg(args, 0))
		case "error":
			_ = a.ShowError(ctx)
		case "dismiss":
			_ = a.DismissError(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		for _, msg := range a.toasts() {
			printlnFn("! " + msg)
		}
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	status := a.nav.Current().FullPath
	if s.User != nil {
		status = s.User.DisplayName() + " " + status
	}
	return "(" + status + ")"
}

// Root opens the home page, which sends anonymous users to the login page,
// and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to midpoint (type 'help' for commands)")

	if _, err := a.nav.Navigate(ctx, "/"); err != nil {
		a.log.Error(ctx, "initial navigation", "error", err)
	}
	a.printLocation()

	runREPL(ctx, a, a.getStatus, a.reader)
}

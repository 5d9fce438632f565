package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for fmt.Println.
var printlnFn = fmt.Println

// execIface lists the commands the REPL can dispatch. *App satisfies it;
// tests substitute a fake to verify dispatch without wiring real services.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Profile(ctx context.Context) error
	Lesson(ctx context.Context) error
	Homework(ctx context.Context) error
	Chat(ctx context.Context) error
	ChatLog(ctx context.Context) error
	NotebookAdd(ctx context.Context) error
	NotebookList(ctx context.Context) error
	NotebookCheck(ctx context.Context) error
	Theme(ctx context.Context) error
	Avatar(ctx context.Context) error
	Top(ctx context.Context) error
	Health(ctx context.Context) error
	MigrateRemote(ctx context.Context) error
}

func printHelp() {
	_, _ = printlnFn("Available commands:")
	_, _ = printlnFn("  login        sign in with a local account")
	_, _ = printlnFn("  register     create a local account")
	_, _ = printlnFn("  sync         reconcile with the remote profile store")
	_, _ = printlnFn("  profile      show current progress")
	_, _ = printlnFn("  lesson       mark a lesson completed")
	_, _ = printlnFn("  homework     submit homework for grading")
	_, _ = printlnFn("  chat         talk to the AI coach")
	_, _ = printlnFn("  chat log     show the conversation so far")
	_, _ = printlnFn("  note add     add a notebook entry")
	_, _ = printlnFn("  note list    list notebook entries")
	_, _ = printlnFn("  note check   toggle an entry's checked state")
	_, _ = printlnFn("  theme        toggle the app theme")
	_, _ = printlnFn("  avatar       upload a profile photo")
	_, _ = printlnFn("  top          show the leaderboard")
	_, _ = printlnFn("  health       show system health agent status")
	_, _ = printlnFn("  migrate      apply remote database migrations")
	_, _ = printlnFn("  logout       reset local progress")
	_, _ = printlnFn("  exit         quit")
}

// runREPL reads commands from the scanner and dispatches them until EOF or
// an exit command. Handlers report their own errors; the loop only echoes
// them and keeps going.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		_, _ = printlnFn()
		_, _ = printlnFn("Enter a command (help for the list):")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd := fields[0]; cmd {
		case "exit", "quit":
			_, _ = printlnFn("Bye!")
			return
		case "help":
			printHelp()
		case "login":
			err = a.Login(ctx)
		case "register":
			err = a.Register(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "sync":
			err = a.Sync(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "lesson":
			err = a.Lesson(ctx)
		case "homework":
			err = a.Homework(ctx)
		case "chat":
			if len(fields) > 1 && fields[1] == "log" {
				err = a.ChatLog(ctx)
			} else {
				err = a.Chat(ctx)
			}
		case "note":
			switch {
			case len(fields) > 1 && fields[1] == "list":
				err = a.NotebookList(ctx)
			case len(fields) > 1 && fields[1] == "check":
				err = a.NotebookCheck(ctx)
			default:
				err = a.NotebookAdd(ctx)
			}
		case "theme":
			err = a.Theme(ctx)
		case "avatar":
			err = a.Avatar(ctx)
		case "top":
			err = a.Top(ctx)
		case "health":
			err = a.Health(ctx)
		case "migrate":
			err = a.MigrateRemote(ctx)
		default:
			_, _ = printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			_, _ = printlnFn("Error:", err)
		}
	}
}
